package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/apierror"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/i18n"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/middleware"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps domain error kinds to HTTP statuses. Anything that is not
// a DomainError is logged and reported as a bare 500.
func respondError(c *gin.Context, err error) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
		return
	}

	switch de.Kind {
	case model.KindValidation:
		ve := apierror.NewValidation(map[string]string{})
		ve.Detail = de.Message
		if de.Field != "" {
			ve.Fields[de.Field] = de.Message
		}
		c.JSON(http.StatusUnprocessableEntity, ve)
	case model.KindNotFound:
		c.JSON(http.StatusNotFound, apierror.WithCode(string(de.Kind), de.Message))
	case model.KindEditInProgress:
		c.JSON(http.StatusConflict, apierror.WithCode(string(de.Kind), de.Message))
	case model.KindExportFailure, model.KindPrintFailure:
		c.JSON(http.StatusInternalServerError, apierror.WithCode(string(de.Kind), de.Message))
	default:
		log.Error().Err(err).Str("kind", string(de.Kind)).Msg("request failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

func snowflakeParam(c *gin.Context, name string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid "+name))
		return 0, false
	}
	return id, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// language reads ?lang=, falling back to the configured default.
func language(c *gin.Context, fallback i18n.Language) i18n.Language {
	return i18n.Parse(c.Query("lang"), fallback)
}
