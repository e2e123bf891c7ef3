package server

import (
	"net/http"
	"strconv"

	conferencedomain "github.com/adrianolorenzi02/conferencia-compra/internal/conference/domain"
	"github.com/adrianolorenzi02/conferencia-compra/internal/report"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DownloadReport serves the reconciliation report as a JSON download. With
// ?save=true the report is also handed to the configured saver.
func (s *Server) DownloadReport(c *gin.Context) {
	snapshot := s.session.Snapshot()
	if snapshot.Step != conferencedomain.StepResults {
		AbortWithError(c, conferencedomain.ErrInvalidStep)
		return
	}

	now := s.clk.Now()
	doc := report.Build(now, snapshot.Items)
	payload, err := report.Encode(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := report.Filename(now)
	if save, _ := strconv.ParseBool(c.Query("save")); save {
		if err := s.saver.Save(c.Request.Context(), filename, payload); err != nil {
			s.log.Warn("report save failed", zap.Error(err))
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", payload)
}
