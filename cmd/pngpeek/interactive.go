package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Wombatlord/png-codec/png"
	"github.com/Wombatlord/png-codec/render"
)

var (
	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")).
			Padding(0, 1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type pane int

const (
	paneHeader pane = iota
	paneChunks
	paneFilters
	panePreview
	paneCount
)

var paneNames = [paneCount]string{"header", "chunks", "filters", "preview"}

type browserModel struct {
	err      error
	filename string
	chunks   []png.Chunk
	header   png.Header
	img      *png.Image
	preview  string
	view     viewport.Model
	active   pane
	ready    bool
}

type loadedMsg struct {
	err    error
	chunks []png.Chunk
	header png.Header
	img    *png.Image
}

func newBrowserModel(filename string) *browserModel {
	return &browserModel{filename: filename}
}

func (m *browserModel) Init() tea.Cmd {
	return m.load
}

func (m *browserModel) load() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	chunks, err := png.ParseDatastream(data)
	if err != nil {
		return loadedMsg{err: err}
	}

	img, err := png.Decode(data)
	if err != nil {
		// A parseable stream with an unsupported header still gets the
		// chunk and header panes.
		var header png.Header
		if len(chunks) > 0 && chunks[0].Tag == png.TagIHDR {
			header, _ = png.DecodeHeader(chunks[0].Payload)
		}
		return loadedMsg{err: err, chunks: chunks, header: header}
	}

	header, _ := png.DecodeHeader(chunks[0].Payload)
	return loadedMsg{chunks: chunks, header: header, img: img}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.err = msg.err
		m.chunks = msg.chunks
		m.header = msg.header
		m.img = msg.img
		if m.img != nil {
			var b strings.Builder
			r := render.New()
			if err := r.Render(&b, m.img.Pix, m.img.Width, m.img.Height); err == nil {
				m.preview = b.String()
			}
		}
		m.refreshContent()
		return m, nil

	case tea.WindowSizeMsg:
		headerHeight := 4
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - headerHeight
		}
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.active = (m.active + 1) % paneCount
			m.refreshContent()
			return m, nil
		case "shift+tab", "left", "h":
			m.active = (m.active + paneCount - 1) % paneCount
			m.refreshContent()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *browserModel) refreshContent() {
	if !m.ready {
		return
	}
	m.view.SetContent(m.content())
	m.view.GotoTop()
}

func (m *browserModel) content() string {
	switch m.active {
	case paneHeader:
		return m.headerContent()
	case paneChunks:
		return m.chunkContent()
	case paneFilters:
		return m.filterContent()
	case panePreview:
		if m.preview == "" {
			return "no preview available"
		}
		return m.preview
	}
	return ""
}

func (m *browserModel) headerContent() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Width:               %d\n", m.header.Width)
	fmt.Fprintf(&b, "Height:              %d\n", m.header.Height)
	fmt.Fprintf(&b, "Bit depth:           %d\n", m.header.BitDepth)
	fmt.Fprintf(&b, "Color type:          %d\n", m.header.ColorType)
	fmt.Fprintf(&b, "Compression method:  %d\n", m.header.Compression)
	fmt.Fprintf(&b, "Filter method:       %d\n", m.header.FilterMeth)
	fmt.Fprintf(&b, "Interlace method:    %d\n", m.header.Interlace)
	if err := m.header.Validate(); err != nil {
		fmt.Fprintf(&b, "\n%s\n", errStyle.Render(err.Error()))
	}
	return b.String()
}

func (m *browserModel) chunkContent() string {
	var b strings.Builder
	for i, c := range m.chunks {
		fmt.Fprintf(&b, "%2d  %s  length=%-8d crc=%#08x\n", i, c.Tag, c.Length, c.CRC)
	}
	return b.String()
}

func (m *browserModel) filterContent() string {
	if m.img == nil {
		return "no filter trace: image did not decode"
	}
	var b strings.Builder
	for row, kind := range m.img.FilterTrace {
		fmt.Fprintf(&b, "row %4d  %s\n", row, kind)
	}
	return b.String()
}

func (m *browserModel) View() string {
	title := paneTitleStyle.Render("pngpeek " + m.filename)

	var tabs []string
	for p := pane(0); p < paneCount; p++ {
		if p == m.active {
			tabs = append(tabs, activeTabStyle.Render(paneNames[p]))
		} else {
			tabs = append(tabs, tabStyle.Render(paneNames[p]))
		}
	}

	var body string
	switch {
	case m.err != nil && m.chunks == nil:
		body = errStyle.Render(m.err.Error())
	case !m.ready:
		body = "loading..."
	default:
		body = m.view.View()
	}

	hint := hintStyle.Render("tab: switch pane • arrows: scroll • q: quit")
	return title + "\n" + strings.Join(tabs, " ") + "\n" + body + "\n" + hint
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newBrowserModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
