package client

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-archipelago/client/pkg/protocol"
)

// Command handles one chat command addressed to this client as
// "@SlotName <name> <args...>".
type Command interface {
	// Name is the command token; matching is case-insensitive.
	Name() string
	// MinArgs is the minimum argument count; fewer produces a chat reply
	// instead of a call.
	MinArgs() int
	Run(c *Client, msg *protocol.PrintJSONPacket, args []string)
}

// commandHandler is a flat token -> command map. No sub-command trees.
// Registration happens on the caller's goroutine while run executes on the
// session reader goroutine, so the map is mutex-guarded.
type commandHandler struct {
	client *Client

	mu       sync.Mutex
	commands map[string]Command
}

func newCommandHandler(c *Client) *commandHandler {
	return &commandHandler{client: c, commands: make(map[string]Command)}
}

func (h *commandHandler) run(msg *protocol.PrintJSONPacket, split []string) {
	if len(split) == 0 {
		return
	}
	h.mu.Lock()
	cmd, ok := h.commands[strings.ToLower(split[0])]
	h.mu.Unlock()
	if !ok {
		h.client.Say(fmt.Sprintf("Command: [%s] does not exist", split[0]))
		return
	}
	if len(split)-1 < cmd.MinArgs() {
		h.client.Say(fmt.Sprintf("Command: [%s] was not given the correct amount of arguments", split[0]))
		return
	}
	cmd.Run(h.client, msg, split[1:])
}

func (h *commandHandler) register(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands[strings.ToLower(cmd.Name())] = cmd
}

func (h *commandHandler) deregister(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.commands, strings.ToLower(cmd.Name()))
}

// RegisterCommand adds a chat command. Safe at any time, before or after
// connecting; the registry survives reconnects.
func (c *Client) RegisterCommand(cmd Command) {
	c.commands.register(cmd)
}

// DeregisterCommand removes a chat command by name.
func (c *Client) DeregisterCommand(cmd Command) {
	c.commands.deregister(cmd)
}

// Say sends a chat message, timeout-guarded. Returns false when not
// connected or when the wait timed out.
func (c *Client) Say(message string) bool {
	if !c.IsConnected() {
		return false
	}
	sess := c.session
	return c.runWithTimeout(func() {
		if err := sess.Say(message); err != nil {
			c.Logger.Printf("apclient: say: %v", err)
		}
	})
}
