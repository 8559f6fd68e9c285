package handlers

import (
	"html/template"
	"net/http"

	"github.com/aaronzipp/midnight-whispers/internal/models"
	"github.com/aaronzipp/midnight-whispers/internal/render"
)

// renderResults reveals every role once the game is over
func (ctx *Context) renderResults(w http.ResponseWriter, g *models.Game) {
	s := g.Snapshot()
	data := struct {
		Code    string
		Page    string
		Day     int
		Outcome template.HTML
		Players template.HTML
		Chat    template.HTML
	}{
		Code:    g.Code,
		Page:    pageResults,
		Day:     s.Day,
		Outcome: template.HTML(render.Outcome(g.Code, s)),
		Players: template.HTML(render.PlayerList(s)),
		Chat:    template.HTML(render.ChatLog(s)),
	}
	ctx.Templates.ExecuteTemplate(w, "results.html", data)
}
