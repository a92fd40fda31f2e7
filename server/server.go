package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zeu5/rl-replay/store"
)

// Server exposes the run archive over HTTP, read-only
type Server struct {
	runStore *store.RunStore
	addr     string
	engine   *gin.Engine
}

func New(runStore *store.RunStore, addr string) *Server {
	engine := gin.Default()
	s := &Server{
		runStore: runStore,
		addr:     addr,
		engine:   engine,
	}
	engine.GET("/runs", s.listRuns)
	engine.GET("/runs/:name", s.getRun)
	engine.GET("/runs/:name/traces", s.getTraces)
	engine.GET("/runs/:name/artifacts/:kind", s.getArtifact)
	return s
}

// Handler exposes the routes for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run() error {
	return s.engine.Run(s.addr)
}

func (s *Server) listRuns(c *gin.Context) {
	names, err := s.runStore.ListRuns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": names})
}

func (s *Server) getRun(c *gin.Context) {
	record, err := s.runStore.GetRun(c.Request.Context(), c.Param("name"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) getTraces(c *gin.Context) {
	name := c.Param("name")
	if _, err := s.runStore.GetRun(c.Request.Context(), name); errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	traces, err := s.runStore.Traces(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"traces": traces})
}

// getArtifact serves the rendered gif or png of the run from disk
func (s *Server) getArtifact(c *gin.Context) {
	record, err := s.runStore.GetRun(c.Request.Context(), c.Param("name"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var path string
	switch c.Param("kind") {
	case "gif":
		path = record.GIF
	case "png":
		path = record.PNG
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown artifact kind"})
		return
	}
	if path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "run has no such artifact"})
		return
	}
	c.File(path)
}
