package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/codearena/arena_controller/constants"
	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/gintool"
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/service"
	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionSvc service.SubmissionService
	log           logger.Logger
}

var _ Handler = (*SubmissionHandler)(nil)

func NewSubmissionHandler(submissionSvc service.SubmissionService, log logger.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionSvc: submissionSvc,
		log:           log,
	}
}

func (h *SubmissionHandler) Register(r *gin.Engine) {
	r.POST(constants.SubmitCodePath, gintool.WrapHandler(h.SubmitCode, h.log))
	r.GET(constants.GetSubmissionPath, gintool.WrapWithoutBodyHandler(h.GetSubmission, h.log))
	r.GET(constants.GetUserSubmissionsPath, gintool.WrapWithoutBodyHandler(h.GetUserSubmissions, h.log))
}

func (h *SubmissionHandler) SubmitCode(c *gin.Context, param *model.SubmitCodeParam) {
	ctx := logger.ContextWithFields(c.Request.Context(), logger.Uint64("problem_id", param.ProblemID))
	startTime := time.Now()

	submission, err := h.submissionSvc.SubmitCode(ctx, param)
	if err != nil {
		code := strconv.Itoa(httpStatusFromError(err))
		submitCodeRequestsTotal.WithLabelValues(code, "error").Inc()
		submitCodeDurationSeconds.WithLabelValues(code, "error").Observe(time.Since(startTime).Seconds())
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "SubmitCode failed", logger.Error(err))
		return
	}

	code := strconv.Itoa(http.StatusOK)
	submitCodeRequestsTotal.WithLabelValues(code, string(submission.Status)).Inc()
	submitCodeDurationSeconds.WithLabelValues(code, string(submission.Status)).Observe(time.Since(startTime).Seconds())
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    submission,
	})
}

func (h *SubmissionHandler) GetSubmission(c *gin.Context, param *model.GetSubmissionParam) {
	ctx := logger.ContextWithFields(c.Request.Context(), logger.Uint64("submission_id", param.SubmissionID))

	submission, err := h.submissionSvc.GetSubmission(ctx, param.SubmissionID)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "GetSubmission failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    model.NewSubmissionResponse(submission),
	})
}

func (h *SubmissionHandler) GetUserSubmissions(c *gin.Context, param *model.SubmissionListParam) {
	ctx := c.Request.Context()

	submissions, err := h.submissionSvc.GetUserSubmissions(ctx, param.Operator)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "GetUserSubmissions failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    submissions,
	})
}
