package gintool

import (
	"fmt"
	"net/http"

	"github.com/codearena/arena_controller/constants"
	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/web/jwt"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type paramPtr[T any] interface {
	model.CommonParamInterface
	*T
}

// 全量绑定完成后统一校验, 避免分段绑定时 required 字段误报
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// ExtractOperator 从登录态 claims 中提取操作人
func ExtractOperator(c *gin.Context, p model.CommonParamInterface) error {
	ucAny, exists := c.Get(constants.ContextUserClaimsKey)
	if !exists {
		return fmt.Errorf("user claims not found in context")
	}
	uc, ok := ucAny.(jwt.ArenaUserClaims)
	if !ok {
		return fmt.Errorf("user claims type assertion error")
	}
	p.SetOperator(uc.UserId)
	p.SetOperatorName(uc.Username)
	return nil
}

// WrapHandler 包装处理函数
func WrapHandler[T any, PT paramPtr[T]](h func(c *gin.Context, param PT), log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := PT(new(T))
		// 1) URI
		if len(c.Params) > 0 {
			if err := c.ShouldBindUri(param); err != nil {
				GinResponse(c, &Response{
					Code:    http.StatusBadRequest,
					Message: err.Error(),
				})
				log.ErrorContext(c.Request.Context(), "WrapHandler bind uri failed", logger.Error(err))
				return
			}
		}

		// 2) Header
		if err := c.ShouldBindHeader(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.ErrorContext(c.Request.Context(), "WrapHandler bind header failed", logger.Error(err))
			return
		}

		// 3) Query/Form
		if c.Request.URL != nil && c.Request.URL.RawQuery != "" {
			if err := c.ShouldBindQuery(param); err != nil {
				GinResponse(c, &Response{
					Code:    http.StatusBadRequest,
					Message: err.Error(),
				})
				log.ErrorContext(c.Request.Context(), "WrapHandler bind query failed", logger.Error(err))
				return
			}
		}

		// 4) JSON
		if err := c.ShouldBindJSON(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.ErrorContext(c.Request.Context(), "WrapHandler bind json failed", logger.Error(err))
			return
		}

		if err := validate.Struct(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.ErrorContext(c.Request.Context(), "WrapHandler validate failed", logger.Error(err))
			return
		}

		if err := ExtractOperator(c, param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusUnauthorized,
				Message: err.Error(),
			})
			log.ErrorContext(c.Request.Context(), "WrapHandler ExtractOperator failed", logger.Error(err))
			return
		}

		h(c, param)
	}
}

// WrapWithoutBodyHandler 包装处理函数, 不绑定 JSON 体
func WrapWithoutBodyHandler[T any, PT paramPtr[T]](h func(c *gin.Context, param PT), log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := PT(new(T))
		// 1) URI
		if len(c.Params) > 0 {
			if err := c.ShouldBindUri(param); err != nil {
				GinResponse(c, &Response{
					Code:    http.StatusBadRequest,
					Message: err.Error(),
				})
				log.ErrorContext(c.Request.Context(), "WrapWithoutBodyHandler bind uri failed", logger.Error(err))
				return
			}
		}

		// 2) Header
		if err := c.ShouldBindHeader(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.ErrorContext(c.Request.Context(), "WrapWithoutBodyHandler bind header failed", logger.Error(err))
			return
		}

		// 3) Query/Form
		if c.Request.URL != nil && c.Request.URL.RawQuery != "" {
			if err := c.ShouldBindQuery(param); err != nil {
				GinResponse(c, &Response{
					Code:    http.StatusBadRequest,
					Message: err.Error(),
				})
				log.ErrorContext(c.Request.Context(), "WrapWithoutBodyHandler bind query failed", logger.Error(err))
				return
			}
		}

		if err := validate.Struct(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.ErrorContext(c.Request.Context(), "WrapWithoutBodyHandler validate failed", logger.Error(err))
			return
		}

		if err := ExtractOperator(c, param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusUnauthorized,
				Message: err.Error(),
			})
			log.ErrorContext(c.Request.Context(), "WrapWithoutBodyHandler ExtractOperator failed", logger.Error(err))
			return
		}

		h(c, param)
	}
}
