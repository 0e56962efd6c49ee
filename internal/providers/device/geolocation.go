package device

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
)

// cityAccuracy is the accuracy reported for IP lookups that give none
const cityAccuracy = 5000

// IPGeolocation asks an IP geolocation service for the host's position.
// Both {"lat","lon"} and {"latitude","longitude"} response shapes are read.
type IPGeolocation struct {
	endpoint string
	client   *resty.Client
	breaker  *resilience.Breaker
}

type geoResponse struct {
	Status    string   `json:"status"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
}

// NewIPGeolocation creates the probe. Calls go through breaker when it is
// not nil.
func NewIPGeolocation(endpoint string, timeout time.Duration, breaker *resilience.Breaker) *IPGeolocation {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "aurora-server")
	return &IPGeolocation{endpoint: endpoint, client: client, breaker: breaker}
}

func (g *IPGeolocation) Geolocation(ctx context.Context) (Geolocation, error) {
	var out Geolocation
	call := func(ctx context.Context) error {
		var err error
		out, err = g.fetch(ctx)
		return err
	}

	var err error
	if g.breaker == nil {
		err = call(ctx)
	} else {
		err = g.breaker.Call(ctx, call)
	}
	if err != nil {
		return Geolocation{}, err
	}
	return out, nil
}

func (g *IPGeolocation) fetch(ctx context.Context) (Geolocation, error) {
	var body geoResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(g.endpoint)
	if err != nil {
		return Geolocation{}, fmt.Errorf("geolocation request: %w", err)
	}
	if resp.IsError() {
		return Geolocation{}, fmt.Errorf("geolocation request: status %d", resp.StatusCode())
	}
	if body.Status != "" && body.Status != "success" {
		return Geolocation{}, fmt.Errorf("geolocation lookup: status %q", body.Status)
	}

	lat, lon := body.Lat, body.Lon
	if lat == nil || lon == nil {
		lat, lon = body.Latitude, body.Longitude
	}
	if lat == nil || lon == nil {
		return Geolocation{}, fmt.Errorf("geolocation response has no coordinates")
	}

	accuracy := float64(cityAccuracy)
	if body.Accuracy != nil {
		accuracy = *body.Accuracy
	}
	return Geolocation{Latitude: *lat, Longitude: *lon, Accuracy: accuracy}, nil
}
