package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/khrees2412/cvforge/internal/app"
	"github.com/khrees2412/cvforge/internal/pipeline"
	"github.com/khrees2412/cvforge/internal/templates"
	"github.com/khrees2412/cvforge/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

type searchRequest struct {
	Query          string          `json:"query"`
	Location       string          `json:"location"`
	Technology     string          `json:"technology"`
	CustomTemplate string          `json:"customTemplate"`
	TemplateName   string          `json:"templateName"`
	Profile        *models.Profile `json:"profile"`
}

type templateRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := s.bind(c, searchSchema, &req); err != nil {
		s.respondError(c, err)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		s.respondError(c, fmt.Errorf("%w: Query is required", app.ErrValidation))
		return
	}
	if !s.hasBaseCV(c, req) {
		s.respondError(c, fmt.Errorf("%w: Profile or custom template is required", app.ErrValidation))
		return
	}

	result, err := s.runner.Run(c.Request.Context(), pipeline.Request{
		Query:          req.Query,
		Location:       req.Location,
		Technology:     req.Technology,
		CustomTemplate: req.CustomTemplate,
		TemplateName:   req.TemplateName,
		Profile:        req.Profile,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	results := result.Results
	if results == nil {
		results = []models.CVResult{}
	}
	ok(c, gin.H{"count": len(results), "results": results})
}

// hasBaseCV reports whether the request names something to build the CV from
func (s *Server) hasBaseCV(c *gin.Context, req searchRequest) bool {
	if req.Profile != nil || strings.TrimSpace(req.CustomTemplate) != "" {
		return true
	}
	name := strings.TrimSpace(req.TemplateName)
	if name == "" || s.templates == nil {
		return false
	}
	_, err := s.templates.Get(c.Request.Context(), name)
	if err != nil && !errors.Is(err, templates.ErrNotFound) {
		s.log.Warn("failed to look up template", "name", name, "error", err)
	}
	return err == nil
}

func (s *Server) handleListTemplates(c *gin.Context) {
	all := map[string]string{}
	if s.templates != nil {
		var err error
		if all, err = s.templates.List(c.Request.Context()); err != nil {
			s.respondError(c, err)
			return
		}
	}
	ok(c, gin.H{"templates": all})
}

func (s *Server) handleSaveTemplate(c *gin.Context) {
	var req templateRequest
	if err := s.bind(c, templateSchema, &req); err != nil {
		s.respondError(c, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Content) == "" {
		s.respondError(c, fmt.Errorf("%w: Name and content are required", app.ErrValidation))
		return
	}
	if s.templates == nil {
		s.respondError(c, fmt.Errorf("%w: template store is not configured", app.ErrConfiguration))
		return
	}

	if err := s.templates.Save(c.Request.Context(), strings.TrimSpace(req.Name), req.Content); err != nil {
		s.respondError(c, err)
		return
	}
	ok(c, gin.H{})
}

func (s *Server) handleDeleteTemplate(c *gin.Context) {
	if s.templates == nil {
		s.respondError(c, templates.ErrNotFound)
		return
	}
	if err := s.templates.Delete(c.Request.Context(), c.Param("name")); err != nil {
		s.respondError(c, err)
		return
	}
	ok(c, gin.H{})
}

func (s *Server) handleBuiltinTemplates(c *gin.Context) {
	all, err := s.builtins.All()
	if err != nil {
		s.respondError(c, err)
		return
	}
	ok(c, gin.H{"templates": all})
}

func (s *Server) handleDownload(c *gin.Context) {
	if s.artifacts == nil {
		c.Status(http.StatusNotFound)
		return
	}
	path, err := s.artifacts.Path(c.Param("name"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}

// bind validates the raw body against schema and decodes it into dst
func (s *Server) bind(c *gin.Context, schema *gojsonschema.Schema, dst interface{}) error {
	body, err := c.GetRawData()
	if err != nil {
		return fmt.Errorf("%w: failed to read body: %v", app.ErrValidation, err)
	}
	if err := validateBody(schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", app.ErrValidation, err)
	}
	return nil
}
