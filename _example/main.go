// Command example demonstrates buxom with a validated JSON endpoint and a
// YAML config checked at startup.
//
// Run:
//
//	go run ./_example
//
// Then:
//
//	curl -X POST localhost:8080/orders -d '{"customer_name":"Alice","item_count":"3","total":9.99}'
//	curl localhost:8080/orders/schema
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	v "github.com/cgkanchi/buxom"
)

var configSchema = v.MustSchema(map[any]any{
	v.Required("addr"): v.String,
	"log_requests":     v.Coerce(v.Bool),
}, v.Extra())

var orderSchema = v.MustSchema(map[any]any{
	v.Required("customer_name"): v.All(v.String, v.Length(1, 200)),
	v.Required("item_count"):    v.All(v.Coerce(v.Int), v.Min(1)),
	v.Required("total"):         v.All(v.Coerce(v.Float), v.Min(0.01)),
	"status":                    v.In("draft", "submitted"),
	"contact": v.MustSchema(map[any]any{
		"email": v.Email(),
	}),
})

// Order receives a validated order mapping.
type Order struct {
	CustomerName string  `json:"customer_name"`
	ItemCount    int     `json:"item_count"`
	Total        float64 `json:"total"`
	Status       string  `json:"status"`
}

func main() {
	config := []byte("addr: :8080\nlog_requests: true\n")
	cfg, err := v.UnmarshalYAMLAndValidate(config, configSchema)
	if err != nil {
		log.Fatalf("bad config: %v", err)
	}
	addr := cfg["addr"].(string)

	http.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		data, err := v.DecodeAndValidate(r.Body, orderSchema)
		if err != nil {
			status := http.StatusBadRequest
			var inv *v.Invalid
			if !errors.As(err, &inv) {
				// Coercion failures, malformed JSON, and the like.
				status = http.StatusUnprocessableEntity
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}

		var order Order
		if err := v.Bind(data, &order); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, order)
	})

	// The order schema, rendered as OpenAPI 3 for consumers.
	http.HandleFunc("/orders/schema", func(w http.ResponseWriter, r *http.Request) {
		ref, err := v.NewSchemaRef(orderSchema)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, ref)
	})

	fmt.Printf("listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}
