package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Extra-Chill/extrachill-blocks/pkg/adventure"
	"github.com/Extra-Chill/extrachill-blocks/pkg/chat"
)

const (
	AgentName       = "Game Master"
	PlaceHolderText = "What do you do?"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config        *ConsoleConfig
	client        *http.Client
	definition    *adventure.Definition
	path          *adventure.PathDefinition
	currentStep   *adventure.StepDefinition
	characterName string

	// Round-tripped story state. The server keeps nothing between turns.
	history     []chat.Message
	progression []adventure.ProgressionEntry
	transition  map[string]string
	lastInput   string

	lastNarrative string
	notice        string

	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	showQuitModal bool
	progressTick  int
}

type turnResultMsg struct {
	result       *adventure.TurnResult
	err          error
	introduction bool
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
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
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, def *adventure.Definition, path *adventure.PathDefinition, characterName string) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	start, _ := path.Start() // Definition is validated before the UI starts

	return ConsoleUI{
		config:        cfg,
		client:        client,
		definition:    def,
		path:          path,
		currentStep:   start,
		characterName: characterName,
		textarea:      ta,
		chatViewport:  chatVp,
		metaViewport:  metaVp,
		loading:       true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(m.requestIntroduction(), progressTick(), textarea.Blink)
}

// buildTurnRequest assembles the full round-tripped state for one turn.
func (m *ConsoleUI) buildTurnRequest(isIntroduction bool, input string) *adventure.TurnRequest {
	req := &adventure.TurnRequest{
		IsIntroduction:    isIntroduction,
		CharacterName:     m.characterName,
		AdventureTitle:    m.definition.Title,
		AdventurePrompt:   m.definition.AdventurePrompt,
		PathPrompt:        m.path.Prompt,
		StepPrompt:        m.currentStep.Prompt,
		GameMasterPersona: m.definition.GameMasterPersona,
		StoryProgression:  append([]adventure.ProgressionEntry(nil), m.progression...),
	}

	if isIntroduction {
		req.TransitionContext = m.transition
		return req
	}

	req.PlayerInput = input
	req.Triggers = m.currentStep.Triggers
	req.ConversationHistory = append([]chat.Message(nil), m.history...)
	return req
}

func (m ConsoleUI) requestIntroduction() tea.Cmd {
	req := m.buildTurnRequest(true, "")
	client, baseURL := m.client, m.config.APIBaseURL
	return func() tea.Msg {
		result, err := sendTurn(client, baseURL, req)
		return turnResultMsg{result: result, err: err, introduction: true}
	}
}

func (m ConsoleUI) sendPlayerInput(input string) tea.Cmd {
	req := m.buildTurnRequest(false, input)
	client, baseURL := m.client, m.config.APIBaseURL
	return func() tea.Msg {
		result, err := sendTurn(client, baseURL, req)
		return turnResultMsg{result: result, err: err}
	}
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
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlY:
			if m.lastNarrative != "" {
				if err := clipboard.WriteAll(m.lastNarrative); err != nil {
					m.notice = "Copy failed: " + err.Error()
				} else {
					m.notice = "Copied last narration to clipboard"
				}
				m.writeChatContent()
			}
			return m, nil

		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0
			m.notice = ""
			m.lastInput = input

			m.history = append(m.history, chat.User(input))
			m.writeChatContent()

			return m, tea.Batch(m.sendPlayerInput(input), progressTick())
		}

	case turnResultMsg:
		return m.handleTurnResult(msg)

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// handleTurnResult applies one turn response to the session. A progression
// result carries no narrative; the console records the move and immediately
// requests the destination step's introduction.
func (m ConsoleUI) handleTurnResult(msg turnResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loading = false
		m.err = msg.err
		m.writeChatContent()
		return m, nil
	}

	if !msg.introduction && msg.result.NextStepID != nil {
		nextID := *msg.result.NextStepID
		next, ok := m.path.Step(nextID)
		if !ok {
			m.loading = false
			m.err = fmt.Errorf("server progressed to unknown step %q", nextID)
			m.writeChatContent()
			return m, nil
		}

		m.progression = append(m.progression, adventure.ProgressionEntry{
			Step:        m.currentStep.ID,
			Destination: nextID,
			Context:     m.lastInput,
		})
		m.transition = map[string]string{
			"previous step": stepLabel(m.currentStep),
			"player action": m.lastInput,
		}
		m.currentStep = next
		m.metaViewport.SetContent(m.writeMetadata())

		// Keep loading; the new step opens with its own introduction.
		return m, tea.Batch(m.requestIntroduction(), progressTick())
	}

	m.loading = false
	m.err = nil
	m.lastNarrative = msg.result.Narrative
	m.history = append(m.history, chat.Assistant(msg.result.Narrative))
	m.writeChatContent()
	m.metaViewport.SetContent(m.writeMetadata())
	m.chatViewport.GotoBottom()
	return m, nil
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		helpText := `
Commands:
• /help - Show this help
• /story - Show the progression log
• Ctrl+Y - Copy last narration
• Ctrl+C - Quit

How to play:
• Type your actions and press Enter
• The game master narrates the story
• Some actions move the story to a new step
`
		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + titleStyle.Render("Help:") + helpText + "\n")
		m.chatViewport.GotoBottom()

	case "/story":
		var sb strings.Builder
		sb.WriteString(titleStyle.Render("Story so far:") + "\n")
		if len(m.progression) == 0 {
			sb.WriteString("The story has just begun.\n")
		} else {
			for i, e := range m.progression {
				sb.WriteString(fmt.Sprintf("%d. %s → %s\n", i+1, e.Step, e.Destination))
			}
		}
		sb.WriteString("\n")

		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + sb.String())
		m.chatViewport.GotoBottom()
	}

	m.textarea.Reset()
	return m, nil
}

func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(m.definition.Title)) + "\n\n")
	content.WriteString("Type your actions below to play.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, msg := range m.history {
		switch msg.Role {
		case chat.RoleAssistant, chat.RoleSystem:
			prefix := narratorStyle.Render(AgentName + ": ")
			content.WriteString(prefix + wordwrap.String(msg.Content, chatWidth-len(AgentName)-2) + "\n\n")
		case chat.RoleUser:
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(msg.Content, chatWidth-6) + "\n\n")
		}
	}

	if m.err != nil {
		content.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}
	if m.notice != "" {
		content.WriteString(noticeStyle.Render(m.notice) + "\n\n")
	}
	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("ADVENTURE") + "\n\n")

	content.WriteString("Path:\n")
	content.WriteString(pathLabel(m.path) + "\n\n")

	content.WriteString("Current step:\n")
	content.WriteString(stepLabel(m.currentStep) + "\n\n")

	if m.characterName != "" {
		content.WriteString("Character:\n")
		content.WriteString(m.characterName + "\n\n")
	}

	content.WriteString(fmt.Sprintf("Moves: %d\n", len(m.progression)))
	content.WriteString(fmt.Sprintf("Messages: %d\n\n", len(m.history)))

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Ctrl+Y: Copy\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /story: Log\n")

	return content.String()
}

func stepLabel(s *adventure.StepDefinition) string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

func pathLabel(p *adventure.PathDefinition) string {
	if p.Title != "" {
		return p.Title
	}
	return p.ID
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
	content.WriteString(modalTitleStyle.Render("Quit Adventure?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to abandon the story?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

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

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
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
