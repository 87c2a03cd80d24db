package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-band-raytracer/pkg/imageio"
	"github.com/df07/go-band-raytracer/pkg/integrator"
	"github.com/df07/go-band-raytracer/pkg/renderer"
	"github.com/df07/go-band-raytracer/pkg/scene"
)

// Image size limits accepted by /api/render
const (
	minImageSize = 1
	maxImageSize = 2000
)

// Server handles web requests for the band raytracer
type Server struct {
	port    int
	scene   *scene.Scene
	echo    *echo.Echo
	renders atomic.Int64
}

// NewServer creates a new web server rendering s
func NewServer(port int, s *scene.Scene) *Server {
	srv := &Server{
		port:  port,
		scene: s,
		echo:  echo.New(),
	}
	srv.echo.HideBanner = true
	srv.echo.Use(corsMiddleware)

	srv.echo.GET("/api/health", srv.handleHealth)
	srv.echo.GET("/api/render", srv.handleRender)
	srv.echo.GET("/api/inspect", srv.handleInspect)
	srv.echo.GET("/api/scene", srv.handleScene)
	return srv
}

// Handler exposes the routes for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.echo.Logger.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Workers int    `json:"workers"` // 0 picks a worker count automatically
	Format  string `json:"format"`  // "ppm" or "png"
}

// InspectResponse describes how the primary ray of one pixel was shaded
type InspectResponse struct {
	X           int                 `json:"x"`
	Y           int                 `json:"y"`
	Hit         bool                `json:"hit"`
	Sphere      int                 `json:"sphere"`
	Material    *scene.MaterialFile `json:"material,omitempty"`
	Bounces     int                 `json:"bounces"`
	Coefficient float32             `json:"coefficient"`
	Reason      string              `json:"reason"`
	Color       [3]uint8            `json:"color"`
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender renders the scene once and returns the image
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	logger := NewWebLogger(renderID, s.echo.Logger)
	config := renderer.Config{Width: req.Width, Height: req.Height, Workers: req.Workers}
	raytracer := renderer.NewRaytracer(s.scene, config, logger)

	fb, stats, err := raytracer.Render(c.Request().Context())
	if errors.Is(err, renderer.ErrInvalidConfig) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "render failed"})
	}

	var buf bytes.Buffer
	contentType := "image/x-portable-pixmap"
	if req.Format == "png" {
		contentType = "image/png"
		err = png.Encode(&buf, fb.ToRGBA())
	} else {
		err = imageio.EncodePPM(&buf, fb.Width, fb.Height, fb.Pix)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to encode image"})
	}

	c.Response().Header().Set("X-Render-Id", renderID)
	c.Response().Header().Set("X-Pixels-Rendered", strconv.FormatInt(stats.PixelsRendered, 10))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// handleInspect traces a single pixel and reports what it hit
func (s *Server) handleInspect(c echo.Context) error {
	x, err := parseIntParam(c.QueryParams(), "x", 0, 0, maxImageSize-1)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	y, err := parseIntParam(c.QueryParams(), "y", 0, 0, maxImageSize-1)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, inspectPixel(s.scene, x, y))
}

// handleScene returns the scene being rendered in scene file form
func (s *Server) handleScene(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ToFile(s.scene))
}

func inspectPixel(s *scene.Scene, x, y int) InspectResponse {
	col, result := integrator.NewWhitted(s).PixelColor(x, y)
	r, g, b := col.Bytes()

	resp := InspectResponse{
		X:           x,
		Y:           y,
		Hit:         result.FirstHit >= 0,
		Sphere:      result.FirstHit,
		Bounces:     result.Bounces,
		Coefficient: result.Coefficient,
		Reason:      result.Reason.String(),
		Color:       [3]uint8{r, g, b},
	}
	if resp.Hit {
		mat := s.MaterialOf(result.FirstHit)
		resp.Material = &scene.MaterialFile{
			Diffuse:    [3]float32{mat.Diffuse.R, mat.Diffuse.G, mat.Diffuse.B},
			Reflection: mat.Reflection,
		}
	}
	return resp
}

// parseRenderRequest parses and validates render parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	defaults := renderer.DefaultConfig()
	req := &RenderRequest{Format: "ppm"}

	var err error
	if req.Width, err = parseIntParam(values, "width", defaults.Width, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaults.Height, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(values, "workers", 0, 0, maxImageSize); err != nil {
		return nil, err
	}

	if format := values.Get("format"); format != "" {
		if format != "ppm" && format != "png" {
			return nil, fmt.Errorf("format must be ppm or png, got: %s", format)
		}
		req.Format = format
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
