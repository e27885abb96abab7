package httpapi

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/agroyield/agri-yield-forecast/internal/forecast"
	"github.com/agroyield/agri-yield-forecast/internal/model"
	"github.com/agroyield/agri-yield-forecast/internal/soil"
	"github.com/agroyield/agri-yield-forecast/internal/store"
	"github.com/agroyield/agri-yield-forecast/internal/weather"
)

var validate = validator.New()

// Deps bundles everything the HTTP handlers need.
type Deps struct {
	Forecast *forecast.Service
	Resolver *weather.Resolver
	Store    *store.MemoryStore
	Soil     *soil.Table
	Model    *model.Handle // nil when no model could be loaded
	// PreferLive is passed through to the resolver on weather endpoints.
	PreferLive bool
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Post("/predict", func(c *fiber.Ctx) error {
		var raw map[string]any
		if err := c.BodyParser(&raw); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "request body must be a JSON object",
			})
		}

		result, err := deps.Forecast.Predict(raw)
		if err != nil {
			return predictError(c, err)
		}

		return c.JSON(predictResponse{Success: true, Result: result})
	})

	v1.Get("/regions", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"regions": deps.Soil.Regions(),
		})
	})

	v1.Get("/soil/:region", func(c *fiber.Ctx) error {
		region := regionParam(c)
		profile, ok := deps.Soil.Lookup(region)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "no soil data found for region: " + region,
			})
		}
		return c.JSON(fiber.Map{
			"success":   true,
			"soil_data": profile,
		})
	})

	v1.Get("/model/info", func(c *fiber.Ctx) error {
		if deps.Model == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"error":   "no model loaded",
			})
		}
		info := deps.Model.Info()
		return c.JSON(fiber.Map{
			"success": true,
			"model_info": fiber.Map{
				"model_type":   info.Type,
				"features":     info.Features,
				"model_loaded": true,
			},
		})
	})

	v1.Get("/weather/:region", func(c *fiber.Ctx) error {
		region := regionParam(c)
		obs := deps.Resolver.Resolve(c.Context(), region, deps.PreferLive)
		return c.JSON(fiber.Map{
			"success":      true,
			"weather_data": obs,
		})
	})

	v1.Get("/weather/:region/forecast", func(c *fiber.Ctx) error {
		var q forecastQuery
		q.Days = c.QueryInt("days")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 7")
		}

		region := regionParam(c)
		fc, err := deps.Resolver.ForecastDays(c.Context(), region, q.Days, deps.PreferLive)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"success":        true,
			"region":         region,
			"forecast_days":  q.Days,
			"daily_forecast": fc,
		})
	})

	v1.Get("/weather/:region/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		region := regionParam(c)
		observations, err := deps.Store.GetRange(region, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"success":      true,
			"region":       region,
			"from":         req.From,
			"to":           req.To,
			"observations": observations,
		})
	})
}

type predictResponse struct {
	Success bool `json:"success"`
	forecast.Result
}

// predictError maps the forecast error taxonomy onto HTTP responses, using
// the same envelope the success path uses.
func predictError(c *fiber.Ctx, err error) error {
	var invalid *forecast.InvalidInputError
	switch {
	case errors.Is(err, forecast.ErrModelUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "model not loaded; train and export a model first",
		})
	case errors.As(err, &invalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid input",
			"details": invalid.Errors,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
}

// regionParam returns the :region path parameter with URL escaping undone,
// so "Andhra%20Pradesh" resolves the same as "Andhra Pradesh".
func regionParam(c *fiber.Ctx) string {
	raw := c.Params("region")
	if region, err := url.PathUnescape(raw); err == nil {
		return region
	}
	return raw
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Days int `validate:"required,min=1,max=7"`
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
