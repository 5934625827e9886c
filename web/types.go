package web

import (
	"net/http"

	"github.com/codearena/arena_controller/pkg/errors"
	"github.com/gin-gonic/gin"
)

type Handler interface {
	Register(r *gin.Engine)
}

// httpStatusFromError 将业务错误码映射为 HTTP 状态码
func httpStatusFromError(err error) int {
	switch errors.GetCode(err) {
	case errors.RoomNotFound, errors.ParticipantNotFound, errors.ProblemNotFound,
		errors.SubmissionNotFound, errors.UserNotFound, errors.TestCaseNotFound:
		return http.StatusNotFound
	case errors.NotRoomCreator, errors.Unauthorized:
		return http.StatusForbidden
	case errors.RoomFull, errors.RoomNotJoinable, errors.RoomNotWaiting:
		return http.StatusConflict
	case errors.MissingProblemSelection, errors.InvalidParams:
		return http.StatusBadRequest
	case errors.NoProblemsAvailable:
		return http.StatusServiceUnavailable
	case errors.ExecutorUnreachable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
