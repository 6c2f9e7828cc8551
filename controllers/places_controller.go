package controllers

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"googlemaps.github.io/maps"

	"github.com/timebridge/timebridge-server/config"
)

type placePrediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// placeAutocomplete is the provider call, replaceable in tests.
var placeAutocomplete = func(ctx context.Context, input string) ([]placePrediction, error) {
	client, err := maps.NewClient(maps.WithAPIKey(os.Getenv(config.EnvMapsKey)))
	if err != nil {
		return nil, err
	}

	resp, err := client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{Input: input})
	if err != nil {
		return nil, err
	}

	out := make([]placePrediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, placePrediction{PlaceID: p.PlaceID, Description: p.Description})
	}
	return out, nil
}

// Autocomplete suggests place names for the meeting location field.
func Autocomplete(c *gin.Context) {
	input := c.Query("input")
	if input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing input"})
		return
	}

	predictions, err := placeAutocomplete(c.Request.Context(), input)
	if err != nil {
		log.Printf("place autocomplete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Autocomplete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": predictions, "status": "OK"})
}
