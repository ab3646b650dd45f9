// Package semrushtest provides an in-memory stand-in for the SEMrush API.
package semrushtest

import (
	"net"
	"net/url"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttputil"
)

const (
	// AnalyticsURL is the analytics endpoint served by Server
	AnalyticsURL = "http://semrush.test/"
	// BacklinksURL is the backlinks endpoint served by Server
	BacklinksURL = "http://semrush.test/analytics/v1/"

	// NothingFound is the provider body for empty results
	NothingFound = "ERROR 50 :: NOTHING FOUND"
)

// Request is a captured provider call
type Request struct {
	Path   string
	Params url.Values
}

// Type returns the report type of the request
func (r Request) Type() string {
	return r.Params.Get("type")
}

// Response is a canned reply for one report type
type Response struct {
	Status int
	Body   string
}

// Server is a fake provider reachable through Dial
type Server struct {
	app *fiber.App
	ln  *fasthttputil.InmemoryListener

	mu        sync.Mutex
	requests  []Request
	responses map[string][]Response
}

// NewServer starts a fake provider. Replies default to NothingFound.
func NewServer() *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		ln:        fasthttputil.NewInmemoryListener(),
		responses: make(map[string][]Response),
	}

	s.app.Get("/", s.handle)
	s.app.Get("/analytics/v1", s.handle)

	go s.app.Listener(s.ln)

	return s
}

// Dial connects to the server; pass it to semrush.WithDialer
func (s *Server) Dial(addr string) (net.Conn, error) {
	return s.ln.Dial()
}

// Handle queues a reply for report. Replies are consumed in order and the
// last one is repeated.
func (s *Server) Handle(report string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[report] = append(s.responses[report], Response{Status: status, Body: body})
}

// HandleRows queues a 200 reply built from a header and rows
func (s *Server) HandleRows(report string, header []string, rows ...[]string) {
	s.Handle(report, fiber.StatusOK, Body(header, rows...))
}

// Requests returns the captured calls in arrival order
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Close stops the server
func (s *Server) Close() error {
	return s.app.Shutdown()
}

func (s *Server) handle(c *fiber.Ctx) error {
	params := url.Values{}
	for k, v := range c.Queries() {
		params.Set(k, v)
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{Path: c.Path(), Params: params})
	resp := s.next(params.Get("type"))
	s.mu.Unlock()

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.Status(resp.Status).SendString(resp.Body)
}

func (s *Server) next(report string) Response {
	queue := s.responses[report]
	if len(queue) == 0 {
		return Response{Status: fiber.StatusOK, Body: NothingFound}
	}
	resp := queue[0]
	if len(queue) > 1 {
		s.responses[report] = queue[1:]
	}
	return resp
}

// Body renders rows in the provider's semicolon-separated format
func Body(header []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ";"))
	for _, row := range rows {
		b.WriteString("\r\n")
		b.WriteString(strings.Join(row, ";"))
	}
	return b.String()
}
