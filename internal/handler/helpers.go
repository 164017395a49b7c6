// Package handler exposes the gateway's HTTP surface to the embedded
// dashboard UI. Handlers bind and validate form payloads, drive the view
// modules, and render their state. All business rules live upstream; the
// only checks here are the pre-network ones the views themselves perform.
package handler

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"dukapos/internal/apierror"
	"dukapos/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Validate decimal amounts with the ordinary numeric tags
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate decodes the JSON body into out and runs validation,
// writing the error response itself on failure.
func bindAndValidate(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return false
	}
	if err := validate.Struct(out); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = validationMessage(fe)
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be " + fe.Param() + " or more"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}

// writeViewErr maps a view failure onto the gateway's own status codes:
// local validation 422, unreachable central API 503, unrecognized response
// 502, and an upstream rejection passes through as 400 with its message.
func writeViewErr(c *gin.Context, err error) {
	e := apierror.From(err)
	switch e.Kind {
	case apierror.KindValidation:
		if len(e.Fields) > 0 {
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(e.Fields))
			return
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.New(e.Detail))
	case apierror.KindTransport:
		c.JSON(http.StatusServiceUnavailable, apierror.New(e.Detail))
	case apierror.KindParse:
		c.JSON(http.StatusBadGateway, apierror.New(e.Detail))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(e.Detail))
	}
}

// stateful is the view surface every module shares.
type stateful interface {
	Phase() view.Phase
	Err() *apierror.Error
	Submitting() bool
}

// stateEnvelope renders the module's lifecycle for the UI.
func stateEnvelope(v stateful) gin.H {
	h := gin.H{
		"state":      v.Phase().String(),
		"submitting": v.Submitting(),
	}
	if e := v.Err(); e != nil {
		h["error"] = e
	}
	return h
}

type loadable interface {
	stateful
	Load(ctx context.Context)
}

// loadView runs the module's Load on first visit and on explicit reloads.
// A module sitting in the error state stays there until the operator retries
// with reload=1.
func loadView(c *gin.Context, v loadable) {
	if v.Phase() == view.PhaseIdle || c.Query("reload") == "1" {
		v.Load(c.Request.Context())
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
