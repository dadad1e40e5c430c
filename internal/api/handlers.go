package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/errs"
	"github.com/youruser/cardsheet/internal/generator"
	imagepkg "github.com/youruser/cardsheet/internal/image"
	"github.com/youruser/cardsheet/internal/logging"
	"github.com/youruser/cardsheet/internal/theme"
)

// Handler serves sheet generation over HTTP. Renders run one per request,
// at most maxConcurrent at a time.
type Handler struct {
	gen       *generator.Generator
	log       *zap.Logger
	sem       *semaphore.Weighted
	maxUpload int64
}

func NewHandler(gen *generator.Generator, log *zap.Logger, maxConcurrent, maxUploadMB int64) *Handler {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if maxUploadMB < 1 {
		maxUploadMB = 8
	}
	return &Handler{
		gen:       gen,
		log:       logging.OrNop(log),
		sem:       semaphore.NewWeighted(maxConcurrent),
		maxUpload: maxUploadMB << 20,
	}
}

// sheetRequest is the JSON form of a sheet request.
type sheetRequest struct {
	Name   string       `json:"name"`
	Cards  []cards.Card `json:"cards"`
	Colors theme.Patch  `json:"colors"`
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = "deck:example"
	}
	sizeStr := c.Query("size")
	size := 400
	if sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil && v > 0 && v <= 4096 {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// typesHandler lists the card types of an uploaded CSV with the colours they
// would be painted in.
func (h *Handler) typesHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	records, err := readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}
	palette := h.gen.Config().Colors
	type entry struct {
		cards.TypeCount
		Known  bool         `json:"known"`
		Colors theme.Colors `json:"colors"`
	}
	out := []entry{}
	for _, tc := range cards.UniqueTypes(records) {
		if tc.Type == theme.BackKey {
			continue
		}
		colors, ok := palette.Resolve(tc.Type)
		if !ok {
			colors = theme.Fallback
		}
		out = append(out, entry{TypeCount: tc, Known: ok, Colors: colors})
	}
	back, _ := palette.Resolve(theme.BackKey)
	c.JSON(http.StatusOK, gin.H{"count": len(records), "types": out, "back": back})
}

// sheetHandler renders a deck. It accepts either a multipart form with a
// "csv" file (plus optional "name" and "colors" JSON fields) or a JSON body.
func (h *Handler) sheetHandler(c *gin.Context) {
	format, err := generator.ParseFormat(c.DefaultQuery("format", "pdf"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	var req sheetRequest
	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		req.Cards, err = readUpload(c)
		if err != nil {
			writeError(c, err)
			return
		}
		req.Name = c.PostForm("name")
		if raw := c.PostForm("colors"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Colors); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid colors: " + err.Error()})
				return
			}
		}
	}

	if err := h.sem.Acquire(c.Request.Context(), 1); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "server busy"})
		return
	}
	defer h.sem.Release(1)

	d := h.gen.Deck(req.Name, req.Cards, h.gen.Config().Colors.Apply(req.Colors))
	out, stats, err := h.gen.Generate(d, format)
	if err != nil {
		writeError(c, err)
		return
	}

	filename := "cards" + format.Extension()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Sheet-Pages", strconv.Itoa(stats.PhysicalPages))
	c.Data(http.StatusOK, format.ContentType(), out)
}

func readUpload(c *gin.Context) ([]cards.Card, error) {
	fh, err := c.FormFile("csv")
	if err != nil {
		return nil, fmt.Errorf("csv file is required: %w", err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cards.LoadCards(f)
}

// writeError maps error kinds to status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch errs.KindOf(err) {
	case errs.KindInput:
		status = http.StatusUnprocessableEntity
	case errs.KindRender:
		status = http.StatusInternalServerError
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	body := gin.H{"error": err.Error(), "kind": errs.KindOf(err).String()}
	var e *errs.Error
	if errors.As(err, &e) {
		if e.Record >= 0 {
			body["record"] = e.Record
		}
		if e.Field != "" {
			body["field"] = e.Field
		}
	}
	c.JSON(status, body)
}
