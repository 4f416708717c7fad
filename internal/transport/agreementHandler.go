package transport

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/hotel-backoffice/internal/service"
)

type AgreementHandler struct {
	agreementService service.AgreementService
}

func NewAgreementHandler(agreementService service.AgreementService) *AgreementHandler {
	return &AgreementHandler{agreementService: agreementService}
}

// UploadAgreement принимает multipart-загрузку файла соглашения
func (h *AgreementHandler) UploadAgreement(c *gin.Context) {
	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file is required")
		return
	}

	agreement, err := h.agreementService.UploadAgreement(c.Request.Context(), bookingID, header)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, agreement)
}

func (h *AgreementHandler) GetBookingAgreements(c *gin.Context) {
	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	agreements, err := h.agreementService.GetBookingAgreements(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, agreements)
}

// DownloadAgreement отдает содержимое файла с исходным именем
func (h *AgreementHandler) DownloadAgreement(c *gin.Context) {
	id, err := parseIDParam(c, "agreement_id")
	if err != nil {
		return
	}

	agreement, reader, err := h.agreementService.OpenAgreement(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", agreement.FileName))
	c.DataFromReader(http.StatusOK, agreement.SizeBytes, agreement.MimeType, reader, nil)
}

func (h *AgreementHandler) DeleteAgreement(c *gin.Context) {
	id, err := parseIDParam(c, "agreement_id")
	if err != nil {
		return
	}

	if err := h.agreementService.DeleteAgreement(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "agreement deleted")
}
