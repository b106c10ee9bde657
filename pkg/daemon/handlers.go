package daemon

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avismetric/metric/pkg/api"
	"github.com/avismetric/metric/pkg/config"
	"github.com/avismetric/metric/pkg/conversion"
	"github.com/avismetric/metric/pkg/events"
	"github.com/avismetric/metric/pkg/units"
	"github.com/avismetric/metric/pkg/version"
)

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getKinds(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, units.Kinds())
}

func getUnits(c *gin.Context) {
	kind, err := units.ParseKind(c.Param("kind"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, units.UnitsOf(kind))
}

func getDefaults(c *gin.Context) {
	kind, err := units.ParseKind(c.Param("kind"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, conf.Defaults(kind))
}

// requestIDHeader carries the id that also appears in the conversion events.
const requestIDHeader = "X-Request-Id"

func convert(c *gin.Context) {
	id := uuid.New().String()
	c.Header(requestIDHeader, id)

	var req api.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, api.CodeBadRequest, err)
		return
	}

	kind, err := units.ParseKind(req.Kind)
	if err != nil {
		abortWithError(c, err)
		return
	}

	d := conf.Defaults(kind)
	from, to := req.From, req.To
	if from == "" {
		from = d.From
	}
	if to == "" {
		to = d.To
	}

	res, err := conversion.ConvertInput(kind, req.Value, from, to)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"id":    id,
			"kind":  kind,
			"input": req.Value,
			"from":  from,
			"to":    to,
		}).Debugf("conversion rejected: %v", err)
		rejected.AddRecordNow()
		hub.Publish(events.ConversionRejected, events.ConversionRejectedEvent{
			ID:      id,
			Kind:    kind.String(),
			Input:   req.Value,
			Code:    api.CodeOf(err),
			Message: err.Error(),
			Ts:      time.Now().Unix(),
		})
		abortWithError(c, err)
		return
	}

	completed.AddRecordNow()
	hub.Publish(events.ConversionCompleted, events.ConversionCompletedEvent{
		ID:     id,
		Kind:   kind.String(),
		Value:  res.Value,
		From:   res.From,
		To:     res.To,
		Result: res.Result,
		Label:  res.Label,
		Ts:     time.Now().Unix(),
	})

	c.IndentedJSON(http.StatusOK, res)
}

func streamEvents(c *gin.Context) {
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func getStats(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, collectStats())
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, conversion.ErrParse),
		errors.Is(err, conversion.ErrNegativeValue),
		errors.Is(err, conversion.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, units.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, units.ErrUnknownUnit):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	abort(c, statusOf(err), api.CodeOf(err), err)
}

func abort(c *gin.Context, status int, code string, err error) {
	resp := api.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	}
	if code == api.CodeNegativeValue {
		resp.Notice = conversion.NegativeValueNotice
	}
	c.IndentedJSON(status, resp)
	_ = c.Error(err)
	c.Abort()
}
