// Package index 提供服務主頁：列出可用端點，方便人工探索。
package index

import (
	"encoding/json"
	"net/http"
)

// IndexHandlerFn 回傳服務簡介與端點清單。
func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	type endpoint struct {
		Method string `json:"method"`
		Path   string `json:"path"`
		Desc   string `json:"desc"`
	}
	type indexBody struct {
		Service   string     `json:"service"`
		Endpoints []endpoint `json:"endpoints"`
	}

	body := indexBody{
		Service: "enrichlab",
		Endpoints: []endpoint{
			{Method: "GET", Path: "/v1/enrich", Desc: "enrichment analysis (query string, small vectors only)"},
			{Method: "POST", Path: "/v1/enrich", Desc: "enrichment analysis (JSON body)"},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}
