package handlers

import (
	"log"
	"net/http"

	"github.com/aaronzipp/midnight-whispers/internal/models"
	"github.com/skip2/go-qrcode"
)

// HandleQR serves a PNG QR code of the game URL for continuing on another device
func (ctx *Context) HandleQR(w http.ResponseWriter, r *http.Request, g *models.Game) {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	url := scheme + "://" + r.Host + "/game/" + g.Code

	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		log.Printf("qr: game=%s err=%v", g.Code, err)
		http.Error(w, "Failed to render QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}
