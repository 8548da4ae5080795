// Package cli handles cmd line input and restoration for DBG and testing various features
package cli

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/spaceserve/internal/logger"
	"github.com/bastiangx/spaceserve/internal/utils"
	"github.com/bastiangx/spaceserve/pkg/restore"
	"github.com/bastiangx/spaceserve/pkg/script"
)

// InputHandler processes user input from stdin, restoring spaces to each
// entered line with the configured hyperparameters.
type InputHandler struct {
	restorer     *restore.Restorer
	params       restore.Params
	mapper       *script.Mapper
	log          *log.Logger
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(restorer *restore.Restorer, params restore.Params) *InputHandler {
	return &InputHandler{
		restorer: restorer,
		params:   params,
		log:      logger.Default("cli"),
	}
}

// SetMapper attaches an optional script mapper. When set, input is
// rewritten to one codepoint per perceived character before restoration
// and rewritten back for display.
func (h *InputHandler) SetMapper(mapper *script.Mapper) {
	h.mapper = mapper
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	h.log.Print("SpaceServe CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type unspaced text and press Enter to restore it (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		h.handleInput(text)
	}
}

// handleInput restores a single line and prints the result with timing
// and cache stats.
func (h *InputHandler) handleInput(text string) {
	h.requestCount++
	if h.mapper != nil {
		text = h.mapper.MapText(text)
	}

	start := time.Now()
	restored, err := h.restorer.Restore(text, h.params)
	elapsed := time.Since(start)
	if err != nil {
		h.log.Errorf("Restore failed: %v", err)
		return
	}
	h.log.Debugf("Took [ %v ] for %d input runes", elapsed, len([]rune(text)))

	if h.mapper != nil {
		restored = h.mapper.UnmapText(restored)
	}
	h.log.Printf("%s", restored)

	if h.requestCount%10 == 0 {
		stats := h.restorer.Stats()
		h.log.Debugf("Cache holds %s chunk results", utils.FormatWithCommas(stats["cachedChunks"]))
	}
}
