package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kmswanson/greenwood/internal/handlers"
	"github.com/kmswanson/greenwood/internal/session"
	"github.com/muesli/reflow/wordwrap"
)

const PlaceHolderText = "Type a command (look, move north, grab stick)..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	session      *session.Session
	gameViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// transcript holds every exchange for re-wrapping on resize.
	transcript   []transcriptEntry
	lastResponse string

	showQuitModal bool
	gameOver      bool
	progressTick  int
}

type transcriptEntry struct {
	input    string // empty for the opening view
	response string
}

type commandResponseMsg struct {
	response *handlers.CommandResponse
	err      error
}

type sessionMsg struct {
	session *session.Session
	err     error
}

type progressTickMsg struct{}

var (
	gamePanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("70")). // forest green
			Bold(true)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("70")).
			Bold(true).
			Align(lipgloss.Center)
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, created *handlers.CreateSessionResponse) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render("> ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	gameVp := viewport.New(50, 20)
	gameVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		session:      created.Session,
		textarea:     ta,
		gameViewport: gameVp,
		metaViewport: metaVp,
		transcript:   []transcriptEntry{{response: created.View}},
		lastResponse: created.View,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

// writeGameContent rebuilds the transcript for the current viewport width.
func (m *ConsoleUI) writeGameContent() {
	gameWidth := m.gameViewport.Width - 6
	if gameWidth < 20 {
		gameWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("GREENWOOD") + "\n\n")
	content.WriteString("Type commands below to explore the world.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", gameWidth-6)) + "\n\n")

	for _, entry := range m.transcript {
		if entry.input != "" {
			content.WriteString(userStyle.Render("> "+entry.input) + "\n\n")
		}
		content.WriteString(gameStyle.Render(wordwrap.String(entry.response, gameWidth)) + "\n\n")
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.gameViewport.SetContent(content.String())
	m.gameViewport.GotoBottom()
}

func writeMetadata(s *session.Session) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("PLAYER") + "\n\n")

	content.WriteString("Session:\n")
	content.WriteString(s.ID.String()[:8] + "...\n\n")

	content.WriteString(fmt.Sprintf("Name: %s\n", s.Player.Name))
	content.WriteString(fmt.Sprintf("Room: %s\n", s.Player.Room))
	content.WriteString(fmt.Sprintf("Health: %d\n", s.Player.Health))
	content.WriteString(fmt.Sprintf("Level: %d\n\n", s.Player.Level))

	if len(s.Player.Inventory) > 0 {
		content.WriteString("Inventory:\n")
		for _, item := range s.Player.Inventory {
			content.WriteString("• " + item + "\n")
		}
	} else {
		content.WriteString("Inventory:\nEmpty\n")
	}

	content.WriteString("\n")
	content.WriteString("Keys:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /copy: Copy last reply\n")

	return content.String()
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.gameViewport, vpCmd = m.gameViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		gameWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - gameWidth - 6

		m.gameViewport.Width = gameWidth - 2
		m.gameViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(gameWidth - 4)

		m.ready = true
		m.writeGameContent()
		m.metaViewport.SetContent(writeMetadata(m.session))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading || m.gameOver {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleLocalCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			m.transcript = append(m.transcript, transcriptEntry{input: input})
			m.writeGameContent()

			return m, tea.Batch(m.sendCommand(input), progressTick())
		}

	case commandResponseMsg:
		m.loading = false
		last := len(m.transcript) - 1
		if msg.err != nil {
			m.err = msg.err
			m.transcript[last].response = errorStyle.Render("Error: " + msg.err.Error())
		} else {
			m.transcript[last].response = msg.response.Response
			m.lastResponse = msg.response.Response
			if msg.response.Quit {
				m.gameOver = true
				m.textarea.Blur()
			}
		}
		m.writeGameContent()
		if m.gameOver {
			return m, nil
		}
		return m, m.refreshSession()

	case sessionMsg:
		if msg.err == nil && msg.session != nil {
			m.session = msg.session
			m.metaViewport.SetContent(writeMetadata(m.session))
		}

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeGameContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.gameViewport, vpCmd = m.gameViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) handleLocalCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "/copy":
		note := "Copied last reply to clipboard."
		if err := clipboard.WriteAll(m.lastResponse); err != nil {
			note = "Clipboard unavailable: " + err.Error()
		}
		m.transcript = append(m.transcript, transcriptEntry{response: promptStyle.Render(note)})
		m.writeGameContent()
	}
	m.textarea.Reset()
	return m, nil
}

func (m ConsoleUI) sendCommand(input string) tea.Cmd {
	return func() tea.Msg {
		cmdReq := handlers.CommandRequest{Input: input}

		jsonData, err := json.Marshal(cmdReq)
		if err != nil {
			return commandResponseMsg{nil, fmt.Errorf("failed to marshal request: %w", err)}
		}

		resp, err := m.client.Post(
			fmt.Sprintf("%s/v1/sessions/%s/command", m.config.APIBaseURL, m.session.ID),
			"application/json",
			bytes.NewBuffer(jsonData),
		)
		if err != nil {
			return commandResponseMsg{nil, fmt.Errorf("failed to send request: %w", err)}
		}
		defer func() {
			_ = resp.Body.Close() // Ignore error in defer
		}()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return commandResponseMsg{nil, fmt.Errorf("failed to read response: %w", err)}
		}

		if resp.StatusCode != http.StatusOK {
			var errorResp handlers.ErrorResponse
			if err := json.Unmarshal(body, &errorResp); err != nil {
				return commandResponseMsg{nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))}
			}
			return commandResponseMsg{nil, fmt.Errorf("command failed: %s", errorResp.Error)}
		}

		var cmdResp handlers.CommandResponse
		if err := json.Unmarshal(body, &cmdResp); err != nil {
			return commandResponseMsg{nil, fmt.Errorf("failed to parse response: %w", err)}
		}

		return commandResponseMsg{&cmdResp, nil}
	}
}

func (m ConsoleUI) refreshSession() tea.Cmd {
	return func() tea.Msg {
		result, err := getSession(m.client, m.config.APIBaseURL, m.session.ID)
		if err != nil {
			return sessionMsg{nil, err}
		}
		return sessionMsg{result.Session, nil}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to quit your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	gameWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - gameWidth - 6

	gamePanel := gamePanelStyle.Width(gameWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.gameViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", gameWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, gamePanel, metaPanel)
}

// renderProgressBar animates a bar while a command is in flight.
func (m ConsoleUI) renderProgressBar() string {
	usable := m.gameViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
