package mock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/zvonbot/zvonocli/internal/logging"
)

// maxLogs bounds the in-memory request log
const maxLogs = 1000

// Server simulates the messaging API with canned routes
type Server struct {
	config     *Config
	logger     *slog.Logger
	httpServer *http.Server
	listener   net.Listener
	patterns   map[int]*regexp.Regexp // route index -> compiled regex
	logs       []RequestLog
	logsMutex  sync.RWMutex
	workdir    string
}

// NewServer creates a simulator. Body files are resolved relative to workdir.
func NewServer(cfg *Config, workdir string, logger *slog.Logger) *Server {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if logger == nil {
		logger = logging.Discard()
	}

	patterns := make(map[int]*regexp.Regexp)
	for i, route := range cfg.Routes {
		if route.PathType == PathRegex {
			if re, err := regexp.Compile(route.Path); err == nil {
				patterns[i] = re
			}
		}
	}

	return &Server{
		config:   cfg,
		logger:   logger,
		patterns: patterns,
		logs:     make([]RequestLog, 0),
		workdir:  workdir,
	}
}

// Handler returns the request handler, for use with httptest
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)
	return mux
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("simulator stopped", "error", err)
		}
	}()

	s.logger.Info("simulator listening", "address", s.Address(), "routes", len(s.config.Routes))
	return nil
}

// Run serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop()
}

// Stop stops the simulator
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// handleRequest answers one request from the first matching route
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	bodyBytes, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		s.logger.Debug("failed to read request body", "path", r.URL.Path, "error", err)
	}

	route := s.findMatchingRoute(r.Method, r.URL.Path)

	var status int
	var responseBody string
	var matchedRule string

	if route == nil {
		status = http.StatusNotFound
		responseBody = fmt.Sprintf("Simulator: no route configured for %s %s", r.Method, r.URL.Path)
		matchedRule = "none"
	} else {
		if route.Delay > 0 {
			select {
			case <-time.After(time.Duration(route.Delay) * time.Millisecond):
			case <-r.Context().Done():
				return
			}
		}

		status = route.Status
		if status == 0 {
			status = http.StatusOK
		}

		for key, value := range route.Headers {
			w.Header().Set(key, value)
		}

		if route.BodyFile != "" {
			filePath := route.BodyFile
			if !filepath.IsAbs(filePath) {
				filePath = filepath.Join(s.workdir, filePath)
			}
			data, err := os.ReadFile(filePath)
			if err != nil {
				status = http.StatusInternalServerError
				responseBody = fmt.Sprintf("Simulator: failed to read body file %s: %v", route.BodyFile, err)
			} else {
				responseBody = string(data)
			}
		} else {
			responseBody = route.Body
		}

		matchedRule = route.Name
		if matchedRule == "" {
			matchedRule = fmt.Sprintf("%s %s", route.Method, route.Path)
		}
	}

	w.WriteHeader(status)
	w.Write([]byte(responseBody))

	duration := time.Since(start)
	s.logger.Debug("simulated request",
		"method", r.Method,
		"path", r.URL.Path,
		"rule", matchedRule,
		"status", status,
		"duration_ms", duration.Milliseconds(),
	)

	if s.config.Logging {
		s.logRequest(RequestLog{
			Timestamp:   start,
			Method:      r.Method,
			Path:        r.URL.Path,
			Headers:     flattenHeaders(r.Header),
			Body:        string(bodyBytes),
			MatchedRule: matchedRule,
			Status:      status,
			Duration:    duration,
		})
	}
}

// findMatchingRoute finds the first route that matches the method and path
func (s *Server) findMatchingRoute(method, path string) *Route {
	for i := range s.config.Routes {
		route := &s.config.Routes[i]
		if !strings.EqualFold(route.Method, method) {
			continue
		}

		matched := false
		switch route.PathType {
		case "", PathExact:
			matched = route.Path == path
		case PathPrefix:
			matched = strings.HasPrefix(path, route.Path)
		case PathSuffix:
			matched = strings.HasSuffix(path, route.Path)
		case PathRegex:
			if re := s.patterns[i]; re != nil {
				matched = re.MatchString(path)
			}
		}

		if matched {
			return route
		}
	}

	return nil
}

// logRequest adds a request to the log
func (s *Server) logRequest(entry RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}
}

// GetLogs returns a copy of the logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// RuleCount is the number of requests answered by one route
type RuleCount struct {
	Rule     string
	Requests int
}

// Summary counts the logged requests per matched rule, in first-seen order.
// Unmatched requests are counted under "none".
func (s *Server) Summary() []RuleCount {
	var counts []RuleCount
	index := make(map[string]int)
	for _, entry := range s.GetLogs() {
		i, ok := index[entry.MatchedRule]
		if !ok {
			i = len(counts)
			index[entry.MatchedRule] = i
			counts = append(counts, RuleCount{Rule: entry.MatchedRule})
		}
		counts[i].Requests++
	}
	return counts
}

// Address returns the base URL of the running simulator
func (s *Server) Address() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return "http://" + net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))
}

// flattenHeaders converts http.Header to map[string]string (first value only)
func flattenHeaders(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if len(values) > 0 {
			result[key] = values[0]
		}
	}
	return result
}
