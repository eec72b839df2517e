package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"echochamber/bundle"
	"echochamber/generate"
	"echochamber/workflow"
)

// maxUploadBytes caps uploaded media at 100 MB.
const maxUploadBytes = 100 << 20

// RegisterGenerateRoutes registers the content-analysis endpoints. All
// of them require an active session.
func (s *Server) RegisterGenerateRoutes(r *gin.Engine) {
	g := r.Group("/api/generate")
	g.POST("", s.handleGenerate)
	g.GET("/status", s.handleStatus)
	g.GET("/result", s.handleResult)
	g.GET("/bundle", s.handleBundle)
	g.POST("/publish", s.handlePublish)
	g.POST("/reset", s.handleReset)
}

// handleGenerate accepts a multipart form with a "source" text field
// and an optional "file" media part, kicks off the pipeline and returns
// 202 immediately. Clients follow up on /status and /result.
func (s *Server) handleGenerate(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	source := c.PostForm("source")
	upload, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if source == "" && upload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide a source URL or upload a file"})
		return
	}

	runner := s.runnerFor(user.ID)

	// Classification and the busy check fail synchronously so the
	// client gets a real status code; the model call itself runs in
	// the background and can take minutes.
	if err := runner.SubmitAsync(context.Background(), source, upload); err != nil {
		switch {
		case errors.Is(err, workflow.ErrUnknownInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, workflow.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, runner.State().GetStatus())
}

func (s *Server) handleStatus(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.runnerFor(user.ID).State().GetStatus())
}

func (s *Server) handleResult(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	assets := s.runnerFor(user.ID).State().Result()
	if assets == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no generated result"})
		return
	}
	c.JSON(http.StatusOK, assets)
}

// handleBundle streams the current result as a zip archive.
func (s *Server) handleBundle(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	assets := s.runnerFor(user.ID).State().Result()
	if assets == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no generated result"})
		return
	}

	name := bundle.Filename(time.Now())
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := bundle.Write(c.Writer, assets); err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("writing bundle for user %s: %v", user.ID, err)
	}
}

// handlePublish uploads the current result bundle to the configured
// artifact store.
func (s *Server) handlePublish(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	if s.s3 == nil || s.s3Bucket == "" {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "artifact store not configured"})
		return
	}
	assets := s.runnerFor(user.ID).State().Result()
	if assets == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no generated result"})
		return
	}

	key, err := bundle.Publish(c.Request.Context(), s.s3, s.s3Bucket, s.s3Prefix, assets, time.Now())
	if err != nil {
		log.Printf("publishing bundle for user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish bundle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bucket": s.s3Bucket, "key": key})
}

func (s *Server) handleReset(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	s.runnerFor(user.ID).State().Reset()
	c.JSON(http.StatusOK, s.runnerFor(user.ID).State().GetStatus())
}

// readUpload pulls the optional "file" part out of the multipart form.
// A missing part is not an error; an oversized one is.
func readUpload(c *gin.Context) (*generate.Upload, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		// No multipart body at all is fine for URL-only submissions.
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid file upload")
	}
	if header.Size > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds the %d MB upload limit", maxUploadBytes>>20)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("invalid file upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("invalid file upload")
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds the %d MB upload limit", maxUploadBytes>>20)
	}

	return &generate.Upload{
		Name: header.Filename,
		MIME: header.Header.Get("Content-Type"),
		Data: data,
	}, nil
}
