package httpapi

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/skycastapp/skycast/internal/weather"
)

// historyLimit caps the recent-history listing.
const historyLimit = 4

// HistoryStore is the history surface the handlers need. Write
// failures on the recording path never reach here; reads and clears
// surface their errors.
type HistoryStore interface {
	RecentHistory(ctx context.Context, limit int) ([]string, error)
	ClearHistory(ctx context.Context) error
	Suggest(ctx context.Context, query string) ([]string, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, history HistoryStore) {
	app.Get("/weather/coords", func(c *fiber.Ctx) error {
		coords, err := weather.ParseCoordinates(c.Query("lat"), c.Query("lon"))
		if err != nil {
			return err
		}

		snapshot, err := service.CurrentByQuery(c.UserContext(), coords.Query())
		if err != nil {
			return err
		}
		return c.JSON(snapshot)
	})

	app.Get("/weather/:city", func(c *fiber.Ctx) error {
		city, err := cityParam(c)
		if err != nil {
			return err
		}

		snapshot, err := service.CurrentByQuery(c.UserContext(), city)
		if err != nil {
			return err
		}
		return c.JSON(snapshot)
	})

	app.Get("/forecast/:city", func(c *fiber.Ctx) error {
		city, err := cityParam(c)
		if err != nil {
			return err
		}

		hours, err := service.HourlyOutlook(c.UserContext(), city)
		if err != nil {
			return err
		}
		return c.JSON(hours)
	})

	app.Get("/history", func(c *fiber.Ctx) error {
		cities, err := history.RecentHistory(c.UserContext(), historyLimit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch history")
		}
		return c.JSON(cities)
	})

	app.Delete("/history", func(c *fiber.Ctx) error {
		if err := history.ClearHistory(c.UserContext()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear history")
		}
		return c.JSON(fiber.Map{"message": "History cleared successfully"})
	})

	app.Get("/autocomplete", func(c *fiber.Ctx) error {
		suggestions, err := history.Suggest(c.UserContext(), c.Query("q"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Autocomplete service failed")
		}
		return c.JSON(suggestions)
	})
}

// cityParam extracts and validates the :city path parameter.
func cityParam(c *fiber.Ctx) (string, error) {
	raw := c.Params("city")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	if strings.TrimSpace(raw) == "" {
		return "", weather.NewInputError("a valid city name must be provided")
	}
	return raw, nil
}

// ErrorHandler maps domain errors to the JSON error envelope. Upstream
// errors mirror the provider's HTTP status and carry its error code;
// anything unrecognized collapses to a generic 500 so internals never
// leak.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var inputErr *weather.InputError
	if errors.As(err, &inputErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": inputErr.Message,
		})
	}

	var upstreamErr *weather.UpstreamError
	if errors.As(err, &upstreamErr) {
		status := upstreamErr.Status
		if status < 400 {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{
			"error": upstreamErr.Message,
			"code":  upstreamErr.Code,
		})
	}

	if errors.Is(err, weather.ErrMalformedUpstream) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Invalid response from weather API",
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
