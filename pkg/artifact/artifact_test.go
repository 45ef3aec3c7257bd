package artifact

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/thebartekbanach/tryon/pkg/garment"
)

func testSource() Source {
	return Source{
		CacheKey:       "abc_def",
		UserPhoto:      DataURL("image/jpeg", "dXNlcg=="),
		ProductImage:   "https://shop.example.com/shirt.jpg",
		ProductGarment: garment.New("shirt", "white"),
		UserGarment:    garment.New("t-shirt", "black"),
	}
}

func TestNewGenerated_SetsImageAndNoError(t *testing.T) {
	a := NewGenerated(testSource(), DataURL("image/png", "aW1hZ2U="))

	if !a.Succeeded() {
		t.Fatalf("Expected generated artifact to succeed")
	}

	if *a.GeneratedImage != "data:image/png;base64,aW1hZ2U=" {
		t.Errorf("Unexpected generated image: %s", *a.GeneratedImage)
	}
}

func TestNewFailed_SetsErrorAndNoImage(t *testing.T) {
	a := NewFailed(testSource(), errors.New("no image in response"))

	if a.Succeeded() || a.GeneratedImage != nil {
		t.Fatalf("Expected failed artifact to carry no image")
	}

	if a.Error == nil || *a.Error != "no image in response" {
		t.Errorf("Expected error to be recorded, got %v", a.Error)
	}
}

func TestArtifact_SerializesMissingImageAsNull(t *testing.T) {
	a := NewFailed(testSource(), errors.New("failed"))

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Error ocurred while marshalling artifact: %s", err)
	}

	if !strings.Contains(string(data), `"generatedImage":null`) {
		t.Errorf("Expected generatedImage to be null, got %s", data)
	}
}

func TestImageRef_IsDataURL(t *testing.T) {
	if !DataURL("image/png", "AAAA").IsDataURL() {
		t.Errorf("Expected data URL to be recognized")
	}

	if ImageRef("https://shop.example.com/a.jpg").IsDataURL() {
		t.Errorf("Expected http URL not to be recognized as data URL")
	}
}
