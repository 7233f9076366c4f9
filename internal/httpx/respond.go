package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-shop-admin.git/internal/catalog"
	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/orders"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
	"github.com/ariefcatur/go-shop-admin.git/internal/pricing"
)

var errBadRequest = errors.New("bad request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// bind decodes the JSON body into v and runs its validate tags.
func bind(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	return validate.Struct(v)
}

func pathID(r *http.Request, name string) (int64, error) {
	s := chi.URLParam(r, name)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", errBadRequest, name, s)
	}
	return id, nil
}

func statusOf(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs),
		errors.Is(err, errBadRequest),
		errors.Is(err, listing.ErrBadParam),
		errors.Is(err, catalog.ErrInvalidInput),
		errors.Is(err, catalog.ErrUnknownBand),
		errors.Is(err, orders.ErrInvalidInput),
		errors.Is(err, pricing.ErrInvalidDiscount),
		errors.Is(err, postgres.ErrInvalid),
		errors.Is(err, postgres.ErrNoRef):
		return http.StatusBadRequest
	case errors.Is(err, postgres.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, postgres.ErrDuplicate), errors.Is(err, postgres.ErrProtected):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	code := statusOf(err)
	body := errorBody{Error: err.Error()}
	switch code {
	case http.StatusNotFound:
		body.Error = "not found"
	case http.StatusInternalServerError:
		log.Error("request failed", zap.Error(err))
		body.Error = "internal error"
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body.Error = "validation failed"
		body.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			body.Fields[fieldPath(fe)] = fieldMessage(fe)
		}
	}
	writeJSON(w, code, body)
}

// fieldPath drops the top-level struct name: "ProductInput.variants[0].price" -> "variants[0].price".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "gt":
		return "must be > " + fe.Param()
	}
	return "failed " + fe.Tag()
}
