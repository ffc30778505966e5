// Package display renders game snapshots as styled terminal text. It only
// reads snapshots and never touches a live game.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/liwamdaman/azul/internal/game"
	"github.com/liwamdaman/azul/internal/tile"
	"github.com/muesli/termenv"
)

// Styles holds every style the renderer uses.
type Styles struct {
	Header  lipgloss.Style
	Panel   lipgloss.Style
	Active  lipgloss.Style
	Name    lipgloss.Style
	Score   lipgloss.Style
	Muted   lipgloss.Style
	Penalty lipgloss.Style
	Tiles   map[tile.Tile]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	tileStyle := func(fg, bg string) lipgloss.Style {
		return r.NewStyle().Bold(true).
			Foreground(lipgloss.Color(fg)).
			Background(lipgloss.Color(bg))
	}
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
		Active: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1),
		Name:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")),
		Score:   r.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Penalty: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		Tiles: map[tile.Tile]lipgloss.Style{
			tile.Blue:   tileStyle("#FAFAFA", "#1E6FD9"),
			tile.Yellow: tileStyle("#000000", "#FFEAA7"),
			tile.Red:    tileStyle("#FAFAFA", "#D63031"),
			tile.Black:  tileStyle("#FAFAFA", "#2D3436"),
			tile.Cyan:   tileStyle("#000000", "#81ECEC"),
			tile.Marker: tileStyle("#000000", "#FAFAFA"),
		},
	}
}

// Renderer turns snapshots into strings.
type Renderer struct {
	renderer *lipgloss.Renderer
	styles   Styles
}

// New returns a renderer for w, detecting its color support.
func New(w io.Writer) *Renderer {
	return newRenderer(lipgloss.NewRenderer(w))
}

// NewWithProfile returns a renderer with a fixed color profile.
// termenv.Ascii gives plain text.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return newRenderer(r)
}

func newRenderer(r *lipgloss.Renderer) *Renderer {
	return &Renderer{renderer: r, styles: newStyles(r)}
}

// Tile renders a tile as its letter on the tile color.
func (r *Renderer) Tile(t tile.Tile) string {
	st, ok := r.styles.Tiles[t]
	if !ok {
		return r.styles.Muted.Render(t.Letter())
	}
	return st.Render(t.Letter())
}

func (r *Renderer) tiles(ts []tile.Tile) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = r.Tile(t)
	}
	return strings.Join(parts, " ")
}

// Offer renders the factories and the center.
func (r *Renderer) Offer(s game.Snapshot) string {
	var b strings.Builder
	for i, f := range s.Factories {
		fmt.Fprintf(&b, "Factory %d: ", i+1)
		if len(f) == 0 {
			b.WriteString(r.styles.Muted.Render("empty"))
		} else {
			b.WriteString(r.tiles(f))
		}
		b.WriteByte('\n')
	}
	b.WriteString("Center:    ")
	center := s.Center
	if s.CenterHasMarker {
		center = append([]tile.Tile{tile.Marker}, center...)
	}
	if len(center) == 0 {
		b.WriteString(r.styles.Muted.Render("empty"))
	} else {
		b.WriteString(r.tiles(center))
	}
	return b.String()
}

// Player renders one board: pattern lines beside the wall, then the floor
// with its running penalty. Empty wall cells show their color in lowercase.
func (r *Renderer) Player(s game.Snapshot, seat int) string {
	p := s.Players[seat]
	var b strings.Builder

	title := r.styles.Name.Render(p.Name) + "  " + r.styles.Score.Render(fmt.Sprintf("%d pts", p.Score))
	if seat == s.FirstPlayer {
		title += "  " + r.styles.Muted.Render("(first)")
	}
	b.WriteString(title)
	b.WriteByte('\n')

	for row := range game.NumRows {
		line := p.Lines[row]
		pad := strings.Repeat("  ", game.NumRows-row-1)
		empty := strings.Repeat(". ", row+1-len(line))
		b.WriteString(pad)
		b.WriteString(r.styles.Muted.Render(empty))
		if len(line) > 0 {
			b.WriteString(r.tiles(line))
			b.WriteByte(' ')
		}
		b.WriteString("| ")
		for col := range game.NumRows {
			if t := p.Wall[row][col]; t != tile.None {
				b.WriteString(r.Tile(t))
			} else {
				b.WriteString(r.styles.Muted.Render(strings.ToLower(tile.PatternColor(row, col).Letter())))
			}
			if col < game.NumRows-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString("Floor: ")
	if len(p.Floor) == 0 {
		b.WriteString(r.styles.Muted.Render("-"))
	} else {
		b.WriteString(r.tiles(p.Floor))
		b.WriteString("  ")
		b.WriteString(r.styles.Penalty.Render(fmt.Sprintf("-%d", game.FloorPenalty(len(p.Floor)))))
	}

	style := r.styles.Panel
	if seat == s.CurrentPlayer && s.Phase == game.PhaseInProgress {
		style = r.styles.Active
	}
	return style.Render(b.String())
}

// Board renders the whole table: header, offer and every player.
func (r *Renderer) Board(s game.Snapshot) string {
	header := fmt.Sprintf("Round %d", s.Round)
	switch s.Phase {
	case game.PhaseInProgress:
		header += fmt.Sprintf(" - %s to play", s.Players[s.CurrentPlayer].Name)
	case game.PhaseRoundScoring:
		header += " - scoring"
	case game.PhaseGameOver:
		header += " - game over"
	}
	header += fmt.Sprintf("  (bag %d, discard %d)", len(s.Bag), len(s.Discard))

	boards := make([]string, len(s.Players))
	for i := range s.Players {
		boards[i] = r.Player(s, i)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		r.styles.Header.Render(header),
		"",
		r.Offer(s),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, boards...),
	)
}

// Summary renders a scoring pass.
func (r *Renderer) Summary(s game.Snapshot, sum game.RoundSummary) string {
	var b strings.Builder
	b.WriteString(r.styles.Header.Render(fmt.Sprintf("Round %d scored", sum.Round)))
	b.WriteByte('\n')
	for _, pl := range sum.Placements {
		fmt.Fprintf(&b, "%s placed %s in row %d: +%d\n",
			s.Players[pl.Player].Name, r.Tile(pl.Color), pl.Row+1, pl.Points)
	}
	for i, pen := range sum.Penalties {
		if pen > 0 {
			fmt.Fprintf(&b, "%s floor: %s\n", s.Players[i].Name, r.styles.Penalty.Render(fmt.Sprintf("-%d", pen)))
		}
	}
	for i, bonus := range sum.Bonuses {
		if pts := bonus.Points(); pts > 0 {
			fmt.Fprintf(&b, "%s bonus: %d rows, %d columns, %d colors: +%d\n",
				s.Players[i].Name, bonus.Rows, bonus.Columns, bonus.ColorSets, pts)
		}
	}
	for i, score := range sum.Scores {
		fmt.Fprintf(&b, "%s: %s\n", s.Players[i].Name, r.styles.Score.Render(fmt.Sprintf("%d", score)))
	}
	return strings.TrimRight(b.String(), "\n")
}
