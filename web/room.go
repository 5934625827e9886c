package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/codearena/arena_controller/constants"
	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/gintool"
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/service"
	"github.com/codearena/arena_controller/service/exporter/factory"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomSvc         service.RoomService
	exporterFactory *factory.RoomResultExporterFactory
	log             logger.Logger
}

var _ Handler = (*RoomHandler)(nil)

func NewRoomHandler(roomSvc service.RoomService, exporterFactory *factory.RoomResultExporterFactory, log logger.Logger) *RoomHandler {
	return &RoomHandler{
		roomSvc:         roomSvc,
		exporterFactory: exporterFactory,
		log:             log,
	}
}

func (h *RoomHandler) Register(r *gin.Engine) {
	r.POST(constants.CreateRoomPath, gintool.WrapHandler(h.CreateRoom, h.log))
	r.POST(constants.RandomJoinRoomPath, gintool.WrapHandler(h.RandomJoinRoom, h.log))
	r.POST(constants.JoinRoomPath, gintool.WrapWithoutBodyHandler(h.JoinRoom, h.log))
	r.POST(constants.LeaveRoomPath, gintool.WrapWithoutBodyHandler(h.LeaveRoom, h.log))
	r.PUT(constants.UpdateReadyPath, gintool.WrapHandler(h.UpdateReady, h.log))
	r.POST(constants.StartRoomPath, gintool.WrapWithoutBodyHandler(h.StartRoom, h.log))
	r.DELETE(constants.DeleteRoomPath, gintool.WrapWithoutBodyHandler(h.DeleteRoom, h.log))
	r.GET(constants.GetRoomDetailsPath, gintool.WrapWithoutBodyHandler(h.GetRoomDetails, h.log))
	r.GET(constants.GetUserRoomsPath, gintool.WrapWithoutBodyHandler(h.GetUserRooms, h.log))
	r.GET(constants.GetPublicRoomsPath, gintool.WrapWithoutBodyHandler(h.GetPublicRooms, h.log))
	r.GET(constants.ExportRoomResultsPath, gintool.WrapWithoutBodyHandler(h.ExportRoomResults, h.log))
}

func (h *RoomHandler) CreateRoom(c *gin.Context, param *model.CreateRoomParam) {
	ctx := c.Request.Context()

	room, err := h.roomSvc.CreateRoom(ctx, param)
	if err != nil {
		code := httpStatusFromError(err)
		createRoomRequestsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "CreateRoom failed", logger.Error(err))
		return
	}

	createRoomRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    room,
	})
}

func (h *RoomHandler) RandomJoinRoom(c *gin.Context, param *model.RandomJoinParam) {
	ctx := c.Request.Context()

	room, err := h.roomSvc.RandomJoin(ctx, param)
	if err != nil {
		code := httpStatusFromError(err)
		randomJoinRequestsTotal.WithLabelValues(strconv.Itoa(code), "failed").Inc()
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "RandomJoinRoom failed", logger.Error(err))
		return
	}

	outcome := "joined"
	if room.CreatedBy == param.Operator {
		outcome = "created"
	}
	randomJoinRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusOK), outcome).Inc()
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    room,
	})
}

func (h *RoomHandler) JoinRoom(c *gin.Context, param *model.RoomIDParam) {
	ctx := logger.ContextWithFields(c.Request.Context(), logger.String("room_id", param.RoomID))

	room, err := h.roomSvc.JoinRoom(ctx, param)
	if err != nil {
		code := httpStatusFromError(err)
		joinRoomRequestsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "JoinRoom failed", logger.Error(err))
		return
	}

	joinRoomRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    room,
	})
}

func (h *RoomHandler) LeaveRoom(c *gin.Context, param *model.RoomIDParam) {
	ctx := logger.ContextWithFields(c.Request.Context(), logger.String("room_id", param.RoomID))

	if err := h.roomSvc.LeaveRoom(ctx, param); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "LeaveRoom failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *RoomHandler) UpdateReady(c *gin.Context, param *model.UpdateReadyParam) {
	ctx := logger.ContextWithFields(c.Request.Context(), logger.String("room_id", param.RoomID))

	if err := h.roomSvc.UpdateReady(ctx, param); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "UpdateReady failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *RoomHandler) StartRoom(c *gin.Context, param *model.RoomIDParam) {
	ctx := logger.ContextWithFields(c.Request.Context(), logger.String("room_id", param.RoomID))
	startTime := time.Now()

	room, err := h.roomSvc.StartRoom(ctx, param)
	if err != nil {
		code := strconv.Itoa(httpStatusFromError(err))
		startRoomRequestsTotal.WithLabelValues(code).Inc()
		startRoomDurationSeconds.WithLabelValues(code).Observe(time.Since(startTime).Seconds())
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "StartRoom failed", logger.Error(err))
		return
	}

	code := strconv.Itoa(http.StatusOK)
	startRoomRequestsTotal.WithLabelValues(code).Inc()
	startRoomDurationSeconds.WithLabelValues(code).Observe(time.Since(startTime).Seconds())
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    room,
	})
}

func (h *RoomHandler) DeleteRoom(c *gin.Context, param *model.RoomIDParam) {
	ctx := logger.ContextWithFields(c.Request.Context(), logger.String("room_id", param.RoomID))

	if err := h.roomSvc.DeleteRoom(ctx, param); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "DeleteRoom failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *RoomHandler) GetRoomDetails(c *gin.Context, param *model.RoomIDParam) {
	ctx := logger.ContextWithFields(c.Request.Context(), logger.String("room_id", param.RoomID))

	room, err := h.roomSvc.GetRoomDetails(ctx, param.RoomID)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "GetRoomDetails failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    room,
	})
}

func (h *RoomHandler) GetUserRooms(c *gin.Context, param *model.RoomListParam) {
	ctx := c.Request.Context()

	rooms, err := h.roomSvc.ListUserRooms(ctx, param.Operator)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "GetUserRooms failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    rooms,
	})
}

func (h *RoomHandler) GetPublicRooms(c *gin.Context, param *model.RoomListParam) {
	ctx := c.Request.Context()

	rooms, err := h.roomSvc.ListPublicRooms(ctx)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "GetPublicRooms failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    rooms,
	})
}

func (h *RoomHandler) ExportRoomResults(c *gin.Context, param *model.ExportRoomResultsParam) {
	ctx := logger.ContextWithFields(c.Request.Context(), logger.String("room_id", param.RoomID))

	format := factory.RoomResultExporterType(param.Format)
	if param.Format == "" {
		format = factory.CSVRoomResultExporter
	}
	exp := h.exporterFactory.GetRoomResultExporter(format)
	if exp == nil {
		exportRoomResultsRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusBadRequest), param.Format).Inc()
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("unsupported export format: %s", param.Format),
		})
		return
	}

	// 先确认房间存在, 避免对缺失房间输出空文件
	roomID := strings.ToUpper(param.RoomID)
	if _, err := h.roomSvc.GetRoomDetails(ctx, roomID); err != nil {
		exportRoomResultsRequestsTotal.WithLabelValues(strconv.Itoa(httpStatusFromError(err)), string(format)).Inc()
		gintool.GinResponse(c, &gintool.Response{
			Code:    httpStatusFromError(err),
			Message: err.Error(),
		})
		h.log.ErrorContext(ctx, "ExportRoomResults failed", logger.Error(err))
		return
	}

	filename := fmt.Sprintf("room_%s_results%s", roomID, factory.ExporterSuffixMap[format])
	c.Header("Content-Type", factory.ExporterContentTypeMap[format])
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := exp.Export(ctx, roomID, c.Writer); err != nil {
		exportRoomResultsRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusInternalServerError), string(format)).Inc()
		h.log.ErrorContext(ctx, "ExportRoomResults failed at export", logger.Error(err))
		return
	}
	exportRoomResultsRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusOK), string(format)).Inc()
}
