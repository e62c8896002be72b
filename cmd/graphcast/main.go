package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"graphcast/pkg/apiclient"
	"graphcast/pkg/bus"
	"graphcast/pkg/chat"
	"graphcast/pkg/config"
	"graphcast/pkg/graph"
	"graphcast/pkg/ingest"
	"graphcast/pkg/interaction"
	"graphcast/pkg/layout"
	"graphcast/pkg/logging"
	"graphcast/pkg/sse"
)

const defaultBackendURL = "http://localhost:8000"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	graphBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	armedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFF00"))

	citationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)

	userTurnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	assistantTurnStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF"))
)

type view int

const (
	graphView view = iota
	chatView
	uploadView
	podcastView
)

const viewCount = 4

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Quit     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Select   key.Binding
	Detail   key.Binding
	Connect  key.Binding
	Frame    key.Binding
	Refetch  key.Binding
	PanKeys  key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Next: key.NewBinding(
		key.WithKeys("down", "]"),
		key.WithHelp("↓/]", "next node"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up", "["),
		key.WithHelp("↑/[", "prev node"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select node"),
	),
	Detail: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "node detail"),
	),
	Connect: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "connect gesture"),
	),
	Frame: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "frame citations"),
	),
	Refetch: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refetch graph"),
	),
	PanKeys: key.NewBinding(
		key.WithKeys("h", "j", "k", "l"),
		key.WithHelp("h/j/k/l", "pan"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Select, k.Detail, k.Connect, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Next, k.Prev, k.Select, k.Detail, k.Connect},
		{k.PanKeys, k.ZoomIn, k.ZoomOut, k.Frame, k.Refetch},
		{k.Quit},
	}
}

// Messages

type frameMsg time.Time

type clusterMsg struct {
	model *graph.Model
	err   error
}

type chatDoneMsg struct {
	turns []chat.Turn
	err   error
}

type ingestDoneMsg struct {
	stages []ingest.Stage
	err    error
}

type podcastsMsg struct {
	list *apiclient.PodcastList
	err  error
}

type detailMsg struct {
	detail apiclient.NodeDetail
}

type busMsg struct {
	topic   string
	payload any
}

func frameCmd() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type model struct {
	api       *apiclient.Client
	collector *ingest.Collector
	session   *chat.Session
	events    *bus.Bus
	logger    logging.Logger

	cfg         config.ToolbarConfig
	cfgPath     string
	engine      *layout.Engine
	camera      *layout.Camera
	ctrl        *interaction.Controller
	highlighter *interaction.Highlighter

	currentView view
	cursor      int
	keys        keyMap
	help        help.Model
	chatInput   textinput.Model
	uploadInput textinput.Model
	podcasts    table.Model

	transcript []chat.Turn
	streaming  bool
	stages     []ingest.Stage
	uploading  bool
	detail     *apiclient.NodeDetail

	width      int
	height     int
	message    string
	messageErr bool
}

func initialModel(backendURL, cfgPath string, cfg config.ToolbarConfig, logger logging.Logger) model {
	events := bus.New()
	streamClient := sse.NewClient(logger)

	engine := layout.NewEngine(graph.NewModel(), layout.ParamsFromToolbar(cfg), 160, 48)
	camera := layout.NewCamera()
	ctrl := interaction.NewController(engine, events, logger)

	ci := textinput.New()
	ci.Placeholder = "Ask the knowledge base..."
	ci.CharLimit = 500
	ci.Width = 60

	ui := textinput.New()
	ui.Placeholder = "/path/to/file.md or https://..."
	ui.CharLimit = 300
	ui.Width = 60

	columns := []table.Column{
		{Title: "Title", Width: 32},
		{Title: "Status", Width: 12},
		{Title: "Audio", Width: 6},
		{Title: "Created", Width: 20},
	}
	pt := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	pt.SetStyles(s)

	return model{
		api:         apiclient.NewClient(backendURL, logger),
		collector:   ingest.NewCollector(backendURL, streamClient, events, logger),
		session:     chat.NewSession(backendURL, streamClient, logger),
		events:      events,
		logger:      logger,
		cfg:         cfg,
		cfgPath:     cfgPath,
		engine:      engine,
		camera:      camera,
		ctrl:        ctrl,
		highlighter: interaction.NewHighlighter(ctrl),
		currentView: graphView,
		keys:        keys,
		help:        help.New(),
		chatInput:   ci,
		uploadInput: ui,
		podcasts:    pt,
	}
}

func (m model) fetchClusterCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiclient.DefaultTimeout)
		defer cancel()
		cluster, err := api.FetchCluster(ctx)
		if err != nil {
			return clusterMsg{err: err}
		}
		return clusterMsg{model: graph.FromClusterResponse(*cluster)}
	}
}

func (m model) sendChatCmd(query string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		err := session.Send(context.Background(), query)
		return chatDoneMsg{turns: session.Turns(), err: err}
	}
}

func (m model) ingestCmd(source string) tea.Cmd {
	collector := m.collector
	return func() tea.Msg {
		tl := ingest.NewTimeline()
		var err error
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			err = collector.CollectURL(context.Background(), source, tl)
		} else {
			var f *os.File
			f, err = os.Open(source)
			if err == nil {
				defer f.Close()
				err = collector.CollectFile(context.Background(), filepath.Base(source), f, tl)
			}
		}
		return ingestDoneMsg{stages: tl.Stages(), err: err}
	}
}

func (m model) fetchPodcastsCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiclient.DefaultTimeout)
		defer cancel()
		list, err := api.Podcasts(ctx)
		return podcastsMsg{list: list, err: err}
	}
}

func (m model) fetchDetailCmd(id string, kind graph.Kind) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiclient.DefaultTimeout)
		defer cancel()
		if kind == graph.KindTopic {
			return detailMsg{detail: api.TopicDetail(ctx, id)}
		}
		return detailMsg{detail: api.NodeDetail(ctx, id)}
	}
}

// waitForBusCmd blocks on one subscription delivery and re-arms itself from
// Update after every message.
func waitForBusCmd(sub *bus.Subscription, topic string) tea.Cmd {
	return func() tea.Msg {
		payload, ok := <-sub.Channel()
		if !ok {
			return nil
		}
		return busMsg{topic: topic, payload: payload}
	}
}

type subscriptions struct {
	refetch   *bus.Subscription
	activated *bus.Subscription
	citations *bus.Subscription
}

var subs subscriptions

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		frameCmd(),
		m.fetchClusterCmd(),
	}
	if subs.refetch != nil {
		cmds = append(cmds,
			waitForBusCmd(subs.refetch, bus.TopicGraphRefetch),
			waitForBusCmd(subs.activated, bus.TopicNodeActivated),
			waitForBusCmd(subs.citations, bus.TopicCitationFocus),
		)
	}
	return tea.Batch(cmds...)
}

// visibleNodes returns the filtered node list the cursor walks, in a stable
// order.
func (m model) visibleNodes() []*graph.Node {
	filtered := m.engine.Model().ApplyFilter(m.cfg)
	nodes := filtered.Nodes
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

func (m model) cursorNode() *graph.Node {
	nodes := m.visibleNodes()
	if len(nodes) == 0 {
		return nil
	}
	if m.cursor >= len(nodes) {
		return nodes[len(nodes)-1]
	}
	return nodes[m.cursor]
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case frameMsg:
		m.engine.Tick()
		return m, frameCmd()

	case clusterMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Graph fetch failed: %v", msg.err)
			m.messageErr = true
			return m, nil
		}
		m.engine.Replace(msg.model)
		m.ctrl.Reset()
		m.cursor = 0
		m.message = fmt.Sprintf("Graph loaded: %d nodes, %d links",
			msg.model.NodeCount(), msg.model.LinkCount())
		m.messageErr = false

	case chatDoneMsg:
		m.streaming = false
		m.transcript = msg.turns
		if msg.err != nil {
			m.message = fmt.Sprintf("Chat failed: %v", msg.err)
			m.messageErr = true
		} else if len(msg.turns) > 0 {
			last := msg.turns[len(msg.turns)-1]
			if ids := chat.ReferenceNodeIDs(last.References); len(ids) > 0 {
				m.events.Publish(bus.TopicCitationFocus, bus.CitationFocus{NodeIDs: ids})
			}
		}

	case ingestDoneMsg:
		m.uploading = false
		m.stages = msg.stages
		if msg.err != nil {
			m.message = fmt.Sprintf("Upload failed: %v", msg.err)
			m.messageErr = true
		} else {
			m.message = "Upload ingested"
			m.messageErr = false
		}

	case podcastsMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Podcast list failed: %v", msg.err)
			m.messageErr = true
			return m, nil
		}
		rows := make([]table.Row, 0, len(msg.list.Podcasts))
		for _, p := range msg.list.Podcasts {
			audio := "no"
			if p.AudioAvailable {
				audio = "yes"
			}
			rows = append(rows, table.Row{p.KnowledgeTitle, p.GenerationStatus, audio, p.CreatedAt})
		}
		m.podcasts.SetRows(rows)

	case detailMsg:
		d := msg.detail
		m.detail = &d

	case busMsg:
		cmds = append(cmds, m.handleBusMsg(msg)...)

	case tea.KeyMsg:
		newModel, keyCmds, handled := m.handleKey(msg)
		m = newModel
		cmds = append(cmds, keyCmds...)
		if handled {
			return m, tea.Batch(cmds...)
		}
	}

	switch m.currentView {
	case chatView:
		m.chatInput, cmd = m.chatInput.Update(msg)
		cmds = append(cmds, cmd)
	case uploadView:
		m.uploadInput, cmd = m.uploadInput.Update(msg)
		cmds = append(cmds, cmd)
	case podcastView:
		m.podcasts, cmd = m.podcasts.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) handleBusMsg(msg busMsg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg.topic {
	case bus.TopicGraphRefetch:
		cmds = append(cmds, m.fetchClusterCmd(), waitForBusCmd(subs.refetch, msg.topic))
	case bus.TopicNodeActivated:
		if ev, ok := msg.payload.(bus.NodeActivated); ok {
			cmds = append(cmds, m.fetchDetailCmd(ev.NodeID, graph.Kind(ev.Kind)))
		}
		cmds = append(cmds, waitForBusCmd(subs.activated, msg.topic))
	case bus.TopicCitationFocus:
		if ev, ok := msg.payload.(bus.CitationFocus); ok {
			m.highlighter.PinCitations(ev.NodeIDs)
			m.highlighter.FrameCitations(m.camera, m.engine.Model(), float64(m.graphWidth()), float64(m.graphHeight()))
		}
		cmds = append(cmds, waitForBusCmd(subs.citations, msg.topic))
	}
	return cmds
}

func (m model) handleKey(msg tea.KeyMsg) (model, []tea.Cmd, bool) {
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Stop()
		m.events.Shutdown()
		if err := config.Save(m.cfgPath, m.cfg); err != nil {
			m.logger.Warn("toolbar config not saved", logging.Error(err))
		}
		return m, []tea.Cmd{tea.Quit}, true

	case key.Matches(msg, m.keys.Tab):
		m.currentView = (m.currentView + 1) % viewCount
		cmds = append(cmds, m.enterView()...)
		return m, cmds, true

	case key.Matches(msg, m.keys.ShiftTab):
		if m.currentView == 0 {
			m.currentView = viewCount - 1
		} else {
			m.currentView--
		}
		cmds = append(cmds, m.enterView()...)
		return m, cmds, true

	case key.Matches(msg, m.keys.Enter):
		switch m.currentView {
		case chatView:
			query := strings.TrimSpace(m.chatInput.Value())
			if query == "" || m.streaming {
				return m, nil, true
			}
			m.streaming = true
			m.chatInput.SetValue("")
			return m, []tea.Cmd{m.sendChatCmd(query)}, true
		case uploadView:
			source := strings.TrimSpace(m.uploadInput.Value())
			if source == "" || m.uploading {
				return m, nil, true
			}
			m.uploading = true
			m.stages = nil
			m.uploadInput.SetValue("")
			return m, []tea.Cmd{m.ingestCmd(source)}, true
		}
	}

	if m.currentView != graphView {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		if n := len(m.visibleNodes()); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case key.Matches(msg, m.keys.Prev):
		if n := len(m.visibleNodes()); n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case key.Matches(msg, m.keys.Select):
		if n := m.cursorNode(); n != nil {
			m.ctrl.Click(n.ID)
		}
	case key.Matches(msg, m.keys.Detail):
		m.detail = nil
		if n := m.cursorNode(); n != nil {
			m.ctrl.DoubleClick(n.ID)
		}
	case key.Matches(msg, m.keys.Connect):
		if n := m.cursorNode(); n != nil {
			linked, err := m.ctrl.RightClick(n.ID)
			switch {
			case err != nil:
				m.message = fmt.Sprintf("Connect failed: %v", err)
				m.messageErr = true
			case linked:
				m.message = "Nodes connected"
				m.messageErr = false
			case m.ctrl.Armed() != "":
				m.message = fmt.Sprintf("Connect armed on %s", n.Name)
				m.messageErr = false
			default:
				m.message = "Connect cancelled"
				m.messageErr = false
			}
		}
	case key.Matches(msg, m.keys.Frame):
		m.highlighter.FrameCitations(m.camera, m.engine.Model(), float64(m.graphWidth()), float64(m.graphHeight()))
	case key.Matches(msg, m.keys.Refetch):
		return m, []tea.Cmd{m.fetchClusterCmd()}, true
	case key.Matches(msg, m.keys.ZoomIn):
		m.camera.ZoomAt(1.2, float64(m.graphWidth())/2, float64(m.graphHeight())/2)
	case key.Matches(msg, m.keys.ZoomOut):
		m.camera.ZoomAt(1/1.2, float64(m.graphWidth())/2, float64(m.graphHeight())/2)
	case key.Matches(msg, m.keys.PanKeys):
		switch msg.String() {
		case "h":
			m.camera.Pan(8, 0)
		case "l":
			m.camera.Pan(-8, 0)
		case "k":
			m.camera.Pan(0, 4)
		case "j":
			m.camera.Pan(0, -4)
		}
	}
	return m, nil, true
}

func (m *model) enterView() []tea.Cmd {
	m.chatInput.Blur()
	m.uploadInput.Blur()
	switch m.currentView {
	case chatView:
		m.chatInput.Focus()
	case uploadView:
		m.uploadInput.Focus()
	case podcastView:
		return []tea.Cmd{m.fetchPodcastsCmd()}
	}
	return nil
}

func (m model) graphWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	return w
}

func (m model) graphHeight() int {
	h := m.height - 12
	if h < 16 {
		h = 16
	}
	return h
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Graphcast - Knowledge Graph Client"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case graphView:
		s.WriteString(m.renderGraph())
	case chatView:
		s.WriteString(m.renderChat())
	case uploadView:
		s.WriteString(m.renderUpload())
	case podcastView:
		s.WriteString(m.renderPodcasts())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Graph", "Chat", "Upload", "Podcasts"}
	var renderedTabs []string

	for i, tab := range tabs {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func nodeGlyph(k graph.Kind) rune {
	switch k {
	case graph.KindCategory:
		return '◉'
	case graph.KindTopic:
		return '●'
	default:
		return '·'
	}
}

// renderGraph rasterizes the current layout through the camera into a
// character grid.
func (m model) renderGraph() string {
	w, h := m.graphWidth(), m.graphHeight()
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = make([]rune, w)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	filtered := m.engine.Model().ApplyFilter(m.cfg)
	styleAt := make(map[[2]int]lipgloss.Style)

	for _, n := range filtered.Nodes {
		sx, sy := m.camera.Apply(n.X, n.Y)
		col, row := int(sx), int(sy)
		if row < 0 || row >= h || col < 0 || col >= w {
			continue
		}
		grid[row][col] = nodeGlyph(n.Kind)

		switch m.highlighter.StateOf(n.ID) {
		case interaction.StateSelected:
			styleAt[[2]int{row, col}] = selectedStyle
		case interaction.StateConnectArmed:
			styleAt[[2]int{row, col}] = armedStyle
		case interaction.StateCitationPinned:
			styleAt[[2]int{row, col}] = citationStyle
		case interaction.StateDimmed:
			styleAt[[2]int{row, col}] = dimStyle
		}
	}

	var viz strings.Builder
	for row := range grid {
		for col := range grid[row] {
			ch := string(grid[row][col])
			if style, ok := styleAt[[2]int{row, col}]; ok {
				viz.WriteString(style.Render(ch))
			} else {
				viz.WriteString(ch)
			}
		}
		viz.WriteString("\n")
	}

	var s strings.Builder
	s.WriteString(graphBoxStyle.Render(viz.String()))
	s.WriteString("\n")

	if n := m.cursorNode(); n != nil {
		line := fmt.Sprintf("▸ %s [%s]", n.Name, n.Kind)
		if m.ctrl.IsSelected(n.ID) {
			line += " (selected)"
		}
		if m.ctrl.Armed() == n.ID {
			line += " (connect armed)"
		}
		s.WriteString(headerStyle.Render(line))
	}

	if m.detail != nil {
		s.WriteString("\n\n")
		if m.detail.Error != "" {
			s.WriteString(errorStyle.Render(m.detail.Error))
		} else {
			text := m.detail.ExtractedText
			if len(text) > 400 {
				text = text[:400] + "…"
			}
			s.WriteString(headerStyle.Render(m.detail.DisplayTitle()))
			s.WriteString("\n")
			s.WriteString(text)
		}
	}

	return contentStyle.Render(s.String())
}

func (m model) renderChat() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Knowledge Chat"))
	s.WriteString("\n\n")

	for _, turn := range m.transcript {
		switch turn.Role {
		case chat.RoleUser:
			s.WriteString(userTurnStyle.Render("You: " + turn.Content))
		default:
			s.WriteString(assistantTurnStyle.Render("Assistant: " + turn.Content))
			for i, ref := range turn.References {
				s.WriteString("\n")
				s.WriteString(helpStyle.Render(fmt.Sprintf("  [%d] %s (%d%%)",
					i+1, ref.MetaData.Name, ref.ConfidencePercent())))
			}
		}
		s.WriteString("\n\n")
	}

	if m.streaming {
		s.WriteString(dimStyle.Render("Assistant is answering..."))
		s.WriteString("\n\n")
	}

	s.WriteString(m.chatInput.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Citations pin and frame their graph nodes automatically"))

	return contentStyle.Render(s.String())
}

func statusGlyph(status ingest.StageStatus) string {
	switch status {
	case ingest.StatusProcessing:
		return "◌"
	case ingest.StatusCompleted:
		return "✓"
	case ingest.StatusFailed:
		return "✗"
	default:
		return "·"
	}
}

func (m model) renderUpload() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Upload Knowledge"))
	s.WriteString("\n\n")
	s.WriteString("File path or URL:\n\n")
	s.WriteString(m.uploadInput.View())
	s.WriteString("\n\n")

	if m.uploading {
		s.WriteString(dimStyle.Render("Ingesting..."))
		s.WriteString("\n")
	}
	for _, stage := range m.stages {
		line := fmt.Sprintf("%s %s", statusGlyph(stage.Status), stage.Label)
		if stage.Note != "" {
			line += " — " + stage.Note
		}
		switch stage.Status {
		case ingest.StatusCompleted:
			s.WriteString(successStyle.Render(line))
		case ingest.StatusFailed:
			s.WriteString(errorStyle.Render(line))
		default:
			s.WriteString(dimStyle.Render(line))
		}
		s.WriteString("\n")
	}

	return contentStyle.Render(s.String())
}

func (m model) renderPodcasts() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Podcast Episodes"))
	s.WriteString("\n\n")
	s.WriteString(m.podcasts.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Navigate with ↑/↓"))

	return contentStyle.Render(s.String())
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "toolbar.yaml"
	}
	return filepath.Join(home, ".graphcast", "toolbar.yaml")
}

func main() {
	backendURL := os.Getenv("GRAPHCAST_API")
	if backendURL == "" {
		backendURL = defaultBackendURL
	}

	cfgPath := configPath()
	os.MkdirAll(filepath.Dir(cfgPath), 0o755)

	// TUI owns stdout; structured logs go to a file next to the config.
	logFile, err := os.OpenFile(filepath.Join(filepath.Dir(cfgPath), "graphcast.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	logger := logging.NewNopLogger()
	if err == nil {
		defer logFile.Close()
		logger = logging.NewJSONLogger(logFile, logging.InfoLevel)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Using default toolbar config: %v", err)
	}

	m := initialModel(backendURL, cfgPath, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	subs.refetch, _ = m.events.Subscribe(ctx, bus.TopicGraphRefetch)
	subs.activated, _ = m.events.Subscribe(ctx, bus.TopicNodeActivated)
	subs.citations, _ = m.events.Subscribe(ctx, bus.TopicCitationFocus)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
