package web

import (
	"net/http"

	"github.com/codearena/arena_controller/constants"
	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/gintool"
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/service"
	"github.com/gin-gonic/gin"
)

type ProblemHandler struct {
	problemSvc service.ProblemService
	log        logger.Logger
}

var _ Handler = (*ProblemHandler)(nil)

func NewProblemHandler(problemSvc service.ProblemService, log logger.Logger) *ProblemHandler {
	return &ProblemHandler{
		problemSvc: problemSvc,
		log:        log,
	}
}

func (h *ProblemHandler) Register(r *gin.Engine) {
	r.GET(constants.GetProblemListPath, gintool.WrapWithoutBodyHandler(h.GetProblemList, h.log))
	r.GET(constants.GetProblemPath, gintool.WrapWithoutBodyHandler(h.GetProblem, h.log))
}

func (h *ProblemHandler) GetProblemList(c *gin.Context, param *model.GetProblemListParam) {
	ctx := c.Request.Context()

	list, err := h.problemSvc.GetProblemList(ctx, param)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "GetProblemList failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    list,
	})
}

// GetProblem 获取题目信息, 不下发测试用例
func (h *ProblemHandler) GetProblem(c *gin.Context, param *model.GetProblemParam) {
	ctx := logger.ContextWithFields(c.Request.Context(), logger.Uint64("problem_id", param.ProblemID))

	problem, err := h.problemSvc.GetProblem(ctx, param.ProblemID)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "GetProblem failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.ProblemResponse{
			ID:                  problem.ID,
			Title:               problem.Title,
			Difficulty:          problem.Difficulty,
			TotalSubmissions:    problem.TotalSubmissions,
			AcceptedSubmissions: problem.AcceptedSubmissions,
		},
	})
}
