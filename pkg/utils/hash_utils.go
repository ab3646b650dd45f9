package utils

import (
	"crypto/md5"
	"fmt"
	"net/url"
)

// CalculateRequestHash returns the MD5 hex digest of a request URL. Hashes
// are used as response cache keys and as short identifiers in logs.
func CalculateRequestHash(requestURL string) string {
	if requestURL == "" {
		return ""
	}

	hash := md5.Sum([]byte(requestURL))
	return fmt.Sprintf("%x", hash)
}

// CalculateRequestHashShort returns the first 8 characters of the request hash
func CalculateRequestHashShort(requestURL string) string {
	fullHash := CalculateRequestHash(requestURL)
	if len(fullHash) >= 8 {
		return fullHash[:8]
	}
	return fullHash
}

// RedactQueryParam removes a query parameter from a URL. Unparseable input
// is returned unchanged.
func RedactQueryParam(rawURL, param string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := parsed.Query()
	if _, ok := query[param]; !ok {
		return rawURL
	}
	query.Del(param)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
