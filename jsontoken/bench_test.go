package jsontoken_test

import (
	"encoding/json"
	"strings"
	"testing"

	goccy "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	segmentio "github.com/segmentio/encoding/json"

	"github.com/lattice-substrate/json-parse/jsontoken"
)

var benchDocument = []byte(`{
  "id": 1234567,
  "name": "widget é \"deluxe\"",
  "price": 19.99,
  "ratio": -0.000125,
  "tags": ["alpha", "beta", "gamma", "delta"],
  "dimensions": {"w": 10, "h": 20.5, "d": 3e2},
  "available": true,
  "discontinued": null,
  "history": [` + strings.TrimSuffix(strings.Repeat(`{"ts":1700000000,"qty":12,"note":"restock"},`, 32), ",") + `]
}`)

func BenchmarkParse(b *testing.B) {
	b.SetBytes(int64(len(benchDocument)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := jsontoken.Parse(benchDocument); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodingJSON(b *testing.B) {
	b.SetBytes(int64(len(benchDocument)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var v any
		if err := json.Unmarshal(benchDocument, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJSONIter(b *testing.B) {
	api := jsoniter.ConfigCompatibleWithStandardLibrary
	b.SetBytes(int64(len(benchDocument)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var v any
		if err := api.Unmarshal(benchDocument, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGoccy(b *testing.B) {
	b.SetBytes(int64(len(benchDocument)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var v any
		if err := goccy.Unmarshal(benchDocument, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSegmentio(b *testing.B) {
	b.SetBytes(int64(len(benchDocument)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var v any
		if err := segmentio.Unmarshal(benchDocument, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseDeepNesting(b *testing.B) {
	in := []byte(nested(jsontoken.MaxDepth))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := jsontoken.Parse(in); err != nil {
			b.Fatal(err)
		}
	}
}
