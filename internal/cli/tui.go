package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/layerscope/layerscope/pkg/layer"
	"github.com/layerscope/layerscope/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// zSpacingStep is the increment for the z-spacing adjuster.
const zSpacingStep = 0.5

// edgeCapStep is the increment for the edge-cap adjuster.
const edgeCapStep = 50

// =============================================================================
// ConfigModel - Interactive Scene Configuration
// =============================================================================

// Configuration fields in display order.
const (
	fieldLabels = iota
	fieldLayerNames
	fieldInterEdges
	fieldZSpacing
	fieldEdgeCap
	fieldCount
)

// ConfigModel is the bubbletea model for interactive scene configuration.
//
// Edits accumulate in a staged configuration; the scene on screen always
// reflects the active one. Enter validates and commits the staged values
// and rebuilds, Esc reverts the staged values to the active ones.
type ConfigModel struct {
	graph *layer.Graph
	store *scene.ConfigStore

	// Edge cap is committed alongside the config store.
	stagedCap int
	activeCap int

	cursor    int
	nodeCount int
	edgeCount int
	traces    int
	status    string

	// Scene holds the last committed build, for callers to use after exit.
	Scene *scene.Scene
}

// NewConfigModel creates a config editor for the graph, building the
// initial scene from cfg.
func NewConfigModel(g *layer.Graph, cfg scene.Config, edgeCap int) (*ConfigModel, error) {
	if edgeCap == 0 {
		edgeCap = scene.DefaultInterEdgeCap
	}
	m := &ConfigModel{
		graph:     g,
		store:     scene.NewConfigStore(cfg),
		stagedCap: edgeCap,
		activeCap: edgeCap,
	}
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	return m, nil
}

// rebuild assembles the scene from the active configuration.
func (m *ConfigModel) rebuild() error {
	s, err := scene.AssembleWithOptions(m.graph, m.store.Active(),
		scene.InterEdgeOptions{Cap: m.activeCap})
	if err != nil {
		return err
	}
	m.Scene = s
	m.nodeCount = s.NodeCount()
	m.edgeCount = s.EdgeCount()
	m.traces = len(s.Traces)
	return nil
}

// Dirty reports whether staged values differ from active ones.
func (m *ConfigModel) Dirty() bool {
	return m.store.Dirty() || m.stagedCap != m.activeCap
}

func (m *ConfigModel) Init() tea.Cmd {
	return nil
}

func (m *ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < fieldCount-1 {
			m.cursor++
		}
	case " ", "right", "l":
		m.adjust(1)
	case "left", "h":
		m.adjust(-1)
	case "enter":
		m.commit()
	case "esc", "r":
		m.store.Revert()
		m.stagedCap = m.activeCap
		m.status = "reverted staged changes"
	}
	return m, nil
}

// adjust modifies the staged value under the cursor. Toggles ignore
// direction; numeric fields move by their step and clamp at their minimum.
func (m *ConfigModel) adjust(dir int) {
	switch m.cursor {
	case fieldLabels:
		m.store.Stage(func(c *scene.Config) { c.ShowLabels = !c.ShowLabels })
	case fieldLayerNames:
		m.store.Stage(func(c *scene.Config) { c.ShowLayerNames = !c.ShowLayerNames })
	case fieldInterEdges:
		m.store.Stage(func(c *scene.Config) { c.ShowInterLayerEdges = !c.ShowInterLayerEdges })
	case fieldZSpacing:
		m.store.Stage(func(c *scene.Config) {
			c.ZSpacing += float64(dir) * zSpacingStep
		})
	case fieldEdgeCap:
		m.stagedCap += dir * edgeCapStep
		if m.stagedCap < edgeCapStep {
			m.stagedCap = edgeCapStep
		}
	}
	m.status = ""
}

// commit validates and activates the staged configuration, then rebuilds.
// On validation failure the active scene is untouched and the staged
// values stay as they are for correction.
func (m *ConfigModel) commit() {
	if !m.Dirty() {
		m.status = "no staged changes"
		return
	}

	active, err := m.store.Commit()
	if err != nil {
		m.status = StyleWarning.Render(err.Error())
		return
	}
	m.activeCap = m.stagedCap

	if err := m.rebuild(); err != nil {
		m.status = StyleWarning.Render(err.Error())
		return
	}
	m.status = fmt.Sprintf("committed (z-spacing %.1f)", active.ZSpacing)
}

func (m *ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Scene Configuration"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣/←/→ adjust  ⏎ commit  esc revert  q quit"))
	b.WriteString("\n\n")

	staged := m.store.Staged()
	active := m.store.Active()

	rows := []struct {
		name          string
		staged, active string
	}{
		{"Labels", onOff(staged.ShowLabels), onOff(active.ShowLabels)},
		{"Layer names", onOff(staged.ShowLayerNames), onOff(active.ShowLayerNames)},
		{"Inter-layer edges", onOff(staged.ShowInterLayerEdges), onOff(active.ShowInterLayerEdges)},
		{"Z spacing", fmt.Sprintf("%.1f", staged.ZSpacing), fmt.Sprintf("%.1f", active.ZSpacing)},
		{"Edge cap", fmt.Sprintf("%d", m.stagedCap), fmt.Sprintf("%d", m.activeCap)},
	}

	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		changed := " "
		if row.staged != row.active {
			changed = StyleWarning.Render("*")
		}

		line := fmt.Sprintf("%s%s %-18s %-8s", cursor, changed, row.name, row.staged)
		if row.staged != row.active {
			line += listDimStyle.Render(fmt.Sprintf("(active: %s)", row.active))
		}

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d traces · %d nodes · %d edges",
		m.traces, m.nodeCount, m.edgeCount)))
	if m.Dirty() {
		b.WriteString("  " + StyleWarning.Render("staged changes pending"))
	}
	if m.status != "" {
		b.WriteString("\n  " + listDimStyle.Render(m.status))
	}
	b.WriteString("\n")

	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
