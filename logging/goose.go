// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package logging

import (
	"fmt"
	"strings"
)

type gooseLogger struct {
	log *Logger
}

// GooseLogger returns an adapter satisfying goose.Logger.
func (log *Logger) GooseLogger() *gooseLogger {
	return &gooseLogger{log: log}
}

func (g *gooseLogger) Fatal(v ...interface{}) {
	g.log.Fatal(strings.TrimSpace(fmt.Sprint(v...)))
}

func (g *gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g *gooseLogger) Print(v ...interface{}) {
	g.log.Info(strings.TrimSpace(fmt.Sprint(v...)))
}

func (g *gooseLogger) Println(v ...interface{}) {
	g.log.Info(strings.TrimSpace(fmt.Sprint(v...)))
}

func (g *gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
