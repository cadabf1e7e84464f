package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"phase-steganography/audio"
	"phase-steganography/models"

	"github.com/gin-gonic/gin"
	"github.com/mdobak/go-xerrors"
)

// ConvertCover turns an uploaded WAV, MP3 or FLAC file into an 8-bit mono cover.
func (h *StegoHandler) ConvertCover(c *gin.Context) {
	if status, err := h.parseForm(c); err != nil {
		c.JSON(status, models.InspectResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	data, header, err := h.readUpload(c, "audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.InspectResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	format, err := audio.FormatFromFilename(header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.InspectResponse{
			Success: false,
			Message: "Invalid audio file format. Only WAV, MP3 and FLAC files are supported",
		})
		return
	}

	cover, err := h.audioDecoder.ConvertToCover(data, format)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "Failed to convert cover.", slog.Any("error", xerrors.New(err)))
		c.JSON(statusFor(err), models.InspectResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to convert audio: %v", err),
		})
		return
	}

	baseFilename := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_cover.wav", baseFilename))
	c.Header("X-Cover-PSNR", audio.FormatPSNR(cover.PSNR))
	c.Header("X-Cover-Sample-Rate", fmt.Sprintf("%d", cover.Metadata.SampleRate))

	c.Data(http.StatusOK, "audio/wav", cover.WAV)
}

// InspectAudio describes an uploaded file without modifying it.
func (h *StegoHandler) InspectAudio(c *gin.Context) {
	if status, err := h.parseForm(c); err != nil {
		c.JSON(status, models.InspectResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	data, header, err := h.readUpload(c, "audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.InspectResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	format, err := audio.FormatFromFilename(header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.InspectResponse{
			Success: false,
			Message: "Invalid audio file format. Only WAV, MP3 and FLAC files are supported",
		})
		return
	}

	metadata, err := h.audioDecoder.Describe(data, format)
	if err != nil {
		c.JSON(statusFor(err), models.InspectResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read audio: %v", err),
		})
		return
	}

	response := models.InspectResponse{
		Success:  true,
		Message:  "Audio described",
		Metadata: metadata,
	}
	if format == audio.FormatWAV {
		if capacity, err := h.phaseCoding.Capacity(data); err == nil {
			response.CapacityBytes = &capacity
		}
	}

	c.JSON(http.StatusOK, response)
}
