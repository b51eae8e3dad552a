package stderr

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// forward logs every non-blank line read from r until EOF.
func forward(r io.Reader, log zerolog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn().Msg(line)
		}
	}
}
