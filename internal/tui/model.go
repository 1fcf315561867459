// Package tui renders a session as a terminal form: a loading screen until
// the session is ready, then a single input whose value is sent to fib.
package tui

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-fibdapp"
)

// Calculator is the part of a session the view drives.
type Calculator interface {
	Calculate(ctx context.Context, input string) (string, error)
}

// ReadyMsg reports a bootstrapped session.
type ReadyMsg struct {
	Accounts []common.Address
	Network  *big.Int
}

// AccountsMsg reports a new account list.
type AccountsMsg struct {
	Accounts []common.Address
}

// ResultMsg carries a successful calculation.
type ResultMsg struct {
	Input string
	Value string
}

// ErrMsg carries a failure to show under the form.
type ErrMsg struct {
	Err error
}

// Styles holds the view styles.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Account lipgloss.Style
	Button  lipgloss.Style
	Result  lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Label:   lipgloss.NewStyle().Bold(true),
		Account: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Button:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27")).Padding(0, 1),
		Result:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Model is the bubbletea model of the Fibonacci form.
type Model struct {
	ctx    context.Context
	calc   Calculator
	styles Styles
	input  textinput.Model

	ready     bool
	accounts  []common.Address
	network   *big.Int
	result    string
	hasResult bool
	pending   int
	err       error
}

// New creates the view. It shows "Loading..." until a ReadyMsg arrives.
func New(ctx context.Context, calc Calculator) Model {
	ti := textinput.New()
	ti.Placeholder = "number"
	ti.Prompt = "> "
	ti.CharLimit = 78
	ti.Width = 40
	ti.Focus()

	return Model{
		ctx:    ctx,
		calc:   calc,
		styles: DefaultStyles(),
		input:  ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if !m.ready {
				return m, nil
			}
			m.pending++
			return m, m.calculate(m.input.Value())
		}

	case ReadyMsg:
		m.ready = true
		m.accounts = msg.Accounts
		m.network = msg.Network
		m.err = nil
		return m, nil

	case AccountsMsg:
		m.accounts = msg.Accounts
		return m, nil

	case ResultMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.result = msg.Value
		m.hasResult = true
		m.err = nil
		return m, nil

	case ErrMsg:
		if m.ready && m.pending > 0 {
			m.pending--
		}
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) calculate(input string) tea.Cmd {
	calc, ctx := m.calc, m.ctx
	return func() tea.Msg {
		value, err := calc.Calculate(ctx, input)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ResultMsg{Input: input, Value: value}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	if !m.ready {
		b.WriteString("Loading...\n")
		if m.err != nil {
			b.WriteString(m.styles.Error.Render(m.err.Error()))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(m.styles.Title.Render("Fibonacci"))
	b.WriteString("\n")
	b.WriteString(m.styles.Account.Render(m.accountLine()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Fibonacci sequence of"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Button.Render("Submit"))
	b.WriteString(m.styles.Muted.Render("  enter to submit, esc to quit"))
	b.WriteString("\n\n")

	if m.pending > 0 {
		b.WriteString(m.styles.Muted.Render("Calculating..."))
		b.WriteString("\n")
	}
	if m.hasResult {
		b.WriteString(m.styles.Result.Render("Result: " + m.result))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) accountLine() string {
	account := "no account"
	if len(m.accounts) > 0 {
		account = m.accounts[0].Hex()
	}
	if m.network != nil {
		return fmt.Sprintf("%s on network %s", account, m.network)
	}
	return account
}

// Observer converts session events to messages delivered through send,
// typically (*tea.Program).Send.
func Observer(send func(tea.Msg)) fibdapp.Observer {
	return func(ev fibdapp.Event) {
		switch ev.Kind {
		case fibdapp.EventReady:
			send(ReadyMsg{Accounts: ev.Accounts, Network: ev.NetworkID})
		case fibdapp.EventAccountsChanged:
			send(AccountsMsg{Accounts: ev.Accounts})
		}
	}
}
