// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"phase-steganography/audio"
	"phase-steganography/models"
	"phase-steganography/stego"

	"github.com/gin-gonic/gin"
	"github.com/mdobak/go-xerrors"
)

type StegoHandler struct {
	audioDecoder   *audio.AudioDecoder
	phaseCoding    *stego.PhaseCoding
	logger         *slog.Logger
	maxUploadBytes int64
}

func NewStegoHandler(config *models.StegoConfig, maxUploadBytes int64, logger *slog.Logger) *StegoHandler {
	return &StegoHandler{
		audioDecoder:   audio.NewAudioDecoder(),
		phaseCoding:    stego.NewPhaseCoding(config, logger),
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Phase coding steganography API is running",
		"version": "1.0.0",
	})
}

func (h *StegoHandler) EmbedMessage(c *gin.Context) {
	if status, err := h.parseForm(c); err != nil {
		c.JSON(status, models.EmbedResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	message, ok := c.GetPostForm("message")
	if !ok {
		c.JSON(http.StatusBadRequest, models.EmbedResponse{
			Success: false,
			Message: "Message is required",
		})
		return
	}

	audioData, audioHeader, err := h.readUpload(c, "audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EmbedResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if !isValidWAVFile(audioHeader.Filename) {
		c.JSON(http.StatusBadRequest, models.EmbedResponse{
			Success: false,
			Message: "Invalid audio file format. Only WAV files are supported",
		})
		return
	}

	h.warnOnUnexpectedFormat(audioData)

	result, err := h.phaseCoding.Embed(audioData, []byte(message))
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "Failed to embed message.", slog.Any("error", xerrors.New(err)))
		c.JSON(statusFor(err), models.EmbedResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to embed message: %v", err),
		})
		return
	}

	baseFilename := strings.TrimSuffix(audioHeader.Filename, filepath.Ext(audioHeader.Filename))
	outputFilename := fmt.Sprintf("%s_stego.wav", baseFilename)

	// Set headers for file download
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))

	// The key cannot be recovered from the file, so it travels in the headers
	c.Header("X-Stego-Method", "Phase Coding")
	c.Header("X-Stego-Key-Exponent", strconv.Itoa(result.Key.SizeExponent))
	c.Header("X-Stego-Message-Bits", strconv.Itoa(result.Key.MessageBits))
	c.Header("X-Stego-Segment-Size", strconv.Itoa(result.Plan.SegmentSize))
	c.Header("X-Stego-PSNR", audio.FormatPSNR(result.PSNR))
	c.Header("X-Stego-Verified", strconv.FormatBool(result.Verified))

	h.logger.InfoContext(c.Request.Context(), "Embedded message.",
		slog.String("file", audioHeader.Filename),
		slog.String("key", result.Key.String()),
		slog.Bool("verified", result.Verified))

	c.Data(http.StatusOK, "audio/wav", result.Audio)
}

func (h *StegoHandler) ExtractMessage(c *gin.Context) {
	if status, err := h.parseForm(c); err != nil {
		c.JSON(status, models.ExtractResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	key, err := parseKey(c.PostForm("size_exponent"), c.PostForm("message_bits"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	stegoAudio, stegoHeader, err := h.readUpload(c, "stego_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if !isValidWAVFile(stegoHeader.Filename) {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: "Invalid audio file format. Only WAV files are supported for extraction",
		})
		return
	}

	hidden, err := h.phaseCoding.Extract(stegoAudio, key)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "Failed to extract message.", slog.Any("error", xerrors.New(err)))
		c.JSON(statusFor(err), models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to extract message: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, models.ExtractResponse{
		Success:       true,
		Message:       "Message extracted",
		HiddenMessage: string(hidden),
	})
}

// parseForm parses the multipart body. Bodies cut off by the upload limit are
// reported as 413.
func (h *StegoHandler) parseForm(c *gin.Context) (int, error) {
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds the %d byte limit", tooLarge.Limit)
		}
		return http.StatusBadRequest, fmt.Errorf("failed to parse form: %v", err)
	}
	return http.StatusOK, nil
}

// limitUploads caps request bodies at maxBytes. Declared lengths over the cap
// are refused before the body is read.
func limitUploads(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"success": false,
				"message": fmt.Sprintf("Upload exceeds the %d byte limit", maxBytes),
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func (h *StegoHandler) readUpload(c *gin.Context, field string) ([]byte, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("file %q is required", field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %v", field, err)
	}
	return data, header, nil
}

// warnOnUnexpectedFormat logs covers the coder will treat poorly. The coder
// itself only skips the header, so these are never rejected.
func (h *StegoHandler) warnOnUnexpectedFormat(data []byte) {
	metadata, err := h.audioDecoder.DescribeWAV(data)
	if err != nil {
		h.logger.Warn("Cover is not a readable WAV file.", slog.Any("error", err))
		return
	}
	if metadata.BitDepth != audio.CoverBitDepth {
		h.logger.Warn("Cover is not 8-bit PCM; samples will be read byte by byte.",
			slog.Int("bit_depth", metadata.BitDepth))
	}
}

// parseKey reads the two key integers typed in by the operator.
func parseKey(exponent, messageBits string) (models.StegoKey, error) {
	e, err := strconv.Atoi(strings.TrimSpace(exponent))
	if err != nil {
		return models.StegoKey{}, fmt.Errorf("%w: size_exponent must be an integer", stego.ErrInvalidKey)
	}
	b, err := strconv.Atoi(strings.TrimSpace(messageBits))
	if err != nil {
		return models.StegoKey{}, fmt.Errorf("%w: message_bits must be an integer", stego.ErrInvalidKey)
	}
	return stego.NewOperatorKey(e, b)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, stego.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, stego.ErrNoUsableAudioData), errors.Is(err, stego.ErrSegmentOutOfRange),
		errors.Is(err, audio.ErrUnsupportedFormat), errors.Is(err, audio.ErrNotWAV), errors.Is(err, audio.ErrEmptyAudio):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func isValidWAVFile(filename string) bool {
	format, err := audio.FormatFromFilename(filename)
	return err == nil && format == audio.FormatWAV
}
