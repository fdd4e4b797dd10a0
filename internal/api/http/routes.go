package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-snapshot/internal/classify"
	"github.com/i474232898/weather-snapshot/internal/units"
	"github.com/i474232898/weather-snapshot/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		sys, err := parseUnits(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var snap weather.WeatherSnapshot
		if hasCoords(c) {
			coords, err := parseCoords(c)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			snap, err = service.SnapshotForCoordinates(c.UserContext(), coords.Lat, coords.Lon)
			if err != nil {
				return toFiberError(err)
			}
		} else {
			text, err := parseText(c)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			snap, err = service.SnapshotForQuery(c.UserContext(), text)
			if err != nil {
				return toFiberError(err)
			}
		}

		return c.JSON(newSnapshotResponse(snap, sys))
	})

	v1.Get("/locations/resolve", func(c *fiber.Ctx) error {
		text, err := parseText(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		q, loc, err := service.Resolve(c.UserContext(), text)
		if err != nil {
			return toFiberError(err)
		}

		return c.JSON(fiber.Map{
			"query":    queryView(q),
			"location": loc,
		})
	})

	v1.Get("/locations/reverse", func(c *fiber.Ctx) error {
		coords, err := parseCoords(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		label, ok := service.ReverseLabel(c.UserContext(), coords.Lat, coords.Lon)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no label for coordinates")
		}
		return c.JSON(fiber.Map{"label": label})
	})

	v1.Delete("/cache", func(c *fiber.Ctx) error {
		service.ClearCache(c.UserContext())
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// toFiberError maps domain errors to HTTP status codes, keeping the message.
func toFiberError(err error) error {
	var notFound *weather.NotFoundError
	if errors.As(err, &notFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	var upstream *weather.UpstreamError
	if errors.As(err, &upstream) {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// coordsQuery holds query parameters for a coordinate pair.
type coordsQuery struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

// textQuery holds the free-text location parameter.
type textQuery struct {
	Q string `validate:"required,max=200"`
}

// unitsQuery holds the optional unit system parameter.
type unitsQuery struct {
	Units string `validate:"omitempty,oneof=metric imperial"`
}

func hasCoords(c *fiber.Ctx) bool {
	return c.Query("lat") != "" || c.Query("lon") != ""
}

func parseCoords(c *fiber.Ctx) (coordsQuery, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		return coordsQuery{}, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return coordsQuery{}, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return coordsQuery{}, errors.New("lon must be a number")
	}

	q := coordsQuery{Lat: lat, Lon: lon}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// parseText reads q. Blank input is rejected here, not by the query parser.
func parseText(c *fiber.Ctx) (string, error) {
	q := textQuery{Q: strings.TrimSpace(c.Query("q"))}
	if err := validate.Struct(q); err != nil {
		return "", errors.New("q query parameter is required (or lat and lon)")
	}
	return q.Q, nil
}

func parseUnits(c *fiber.Ctx) (units.System, error) {
	q := unitsQuery{Units: strings.ToLower(c.Query("units"))}
	if err := validate.Struct(q); err != nil {
		return "", errors.New("units must be metric or imperial")
	}
	return units.ParseSystem(q.Units), nil
}

type roadView struct {
	Category classify.RoadCondition `json:"category"`
	classify.Description
}

type currentView struct {
	Time        string   `json:"time"`
	Temperature string   `json:"temperature"`
	Road        roadView `json:"road"`
}

type hourView struct {
	units.Hour
	Road       classify.RoadCondition `json:"road"`
	AirQuality weather.AQICategory    `json:"airQuality,omitempty"`
}

type snapshotResponse struct {
	Snapshot weather.WeatherSnapshot `json:"snapshot"`
	Units    units.System            `json:"units"`
	Current  *currentView            `json:"current,omitempty"`
	Hourly   []hourView              `json:"hourly"`
}

func newRoadView(rc classify.RoadCondition) roadView {
	return roadView{Category: rc, Description: classify.DescribeRoad(rc)}
}

func newSnapshotResponse(snap weather.WeatherSnapshot, sys units.System) snapshotResponse {
	resp := snapshotResponse{
		Snapshot: snap,
		Units:    sys,
		Hourly:   make([]hourView, 0, len(snap.Hourly)),
	}

	if snap.Current != nil {
		resp.Current = &currentView{
			Time:        snap.Current.Time,
			Temperature: units.Temperature(snap.Current.Temperature, sys),
			Road:        newRoadView(classify.RoadForCurrent(snap)),
		}
	}

	for _, h := range snap.Hourly {
		view := hourView{
			Hour: units.FormatHour(h, sys),
			Road: classify.RoadForHour(h),
		}
		if h.AirQuality != nil {
			view.AirQuality = h.AirQuality.Category
		}
		resp.Hourly = append(resp.Hourly, view)
	}

	return resp
}

func queryView(q weather.LocationQuery) fiber.Map {
	switch q := q.(type) {
	case weather.ZipQuery:
		return fiber.Map{"kind": "zip", "code": q.Code}
	case weather.CityRegionQuery:
		return fiber.Map{"kind": "city_region", "city": q.City, "regionCode": q.RegionCode}
	default:
		return fiber.Map{"kind": "generic", "raw": q.Text()}
	}
}
