package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

func handle[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newContext(w, req)
		defer func() { r.close(ctx) }()

		ctx, err := r.runMiddlewares(ctx, r.befores)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
			return
		}

		var request Request
		if err := bind(req, method, &request); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
			err = errorx.New(errorx.BadRequest, "Invalid request")
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
			return
		}

		if err := validate(r.validate, &request); err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
			return
		}

		resp, err := handler(ctx, &request)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
			return
		}

		ctx = xcontext.WithResponse(ctx, resp)
		ctx, err = r.runMiddlewares(ctx, r.afters)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, err)
			return
		}

		// A nil response means the handler already wrote to the client.
		if resp == nil {
			return
		}

		if err := writeJSON(w, http.StatusOK, newResponse(resp)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		}
	}
}

func bind(req *http.Request, method string, obj any) error {
	switch method {
	case http.MethodGet:
		return bindQuery(req.URL.Query(), obj)
	case http.MethodPost:
		// Multipart bodies are consumed by the handler itself.
		if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
			return bindQuery(req.URL.Query(), obj)
		}

		err := json.NewDecoder(req.Body).Decode(obj)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	default:
		return errors.New("unsupported method")
	}
}

func bindQuery(values url.Values, obj any) error {
	m := map[string]any{}
	for k, v := range values {
		if len(v) == 1 {
			m[k] = v[0]
		} else {
			m[k] = v
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           obj,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(m)
}

func validate(v *validator.Validate, obj any) error {
	err := v.Struct(obj)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		// Not a struct, nothing to validate.
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errorx.New(errorx.BadRequest, "Invalid %s (%s)", strings.ToLower(fe.Field()), fe.Tag())
	}

	return errorx.New(errorx.BadRequest, "Invalid request")
}

func writeError(ctx context.Context, err error) {
	w := xcontext.HTTPWriter(ctx)
	if w == nil {
		return
	}

	if err := writeJSON(w, http.StatusOK, newErrorResponse(err)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
