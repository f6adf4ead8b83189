/*
Command wffdemo serves a small counter page kept in sync with the browser
over a WebSocket.

Usage:

	wffdemo [--addr=<addr>] [--ws-path=<path>] [--max-idle=<duration>]

Every request of "/" creates a new page. Clicking the button calls a server
method which changes the tag tree; the changes are pushed to the browser.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/docopt/docopt-go"
	"github.com/gorilla/mux"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/webfirmframework/wff-sub006/css"
	"github.com/webfirmframework/wff-sub006/page"
	"github.com/webfirmframework/wff-sub006/style"
	"github.com/webfirmframework/wff-sub006/tag"
	"github.com/webfirmframework/wff-sub006/wire"
)

const version = "0.1.0"

const usage = `wffdemo serves a live counter page.

Usage:
    wffdemo [--addr=<addr>] [--ws-path=<path>] [--max-idle=<duration>]
    wffdemo -h | --help
    wffdemo --version

Options:
    -h --help               Show this screen.
    --version               Show version.
    --addr=<addr>           Listen address [default: :8080].
    --ws-path=<path>        Path of the WebSocket endpoint [default: /wffws].
    --max-idle=<duration>   Drop pages without connection after this time [default: 2m].`

func tracer() tracing.Trace {
	return tracing.Select("wff.demo")
}

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	addr, _ := opts.String("--addr")
	wsPath, _ := opts.String("--ws-path")
	idle, _ := opts.String("--max-idle")
	maxIdle, err := time.ParseDuration(idle)
	if err == nil && maxIdle <= 0 {
		err = fmt.Errorf("--max-idle must be positive, is %s", idle)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx := page.NewContext()
	go ctx.Run(context.Background(), maxIdle/4, maxIdle)
	settings := page.DefaultSettings()
	settings.WebSocketURL = wsPath

	r := mux.NewRouter()
	r.HandleFunc(wsPath, page.Handler(ctx))
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		p := page.New(page.RenderFunc(counterDocument), settings)
		ctx.Add(p)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := p.WriteTo(w); err != nil {
			tracer().Errorf("writing page %s: %v", p.InstanceID(), err)
		}
	}).Methods(http.MethodGet)

	tracer().Infof("listening on %s, websocket at %s", addr, wsPath)
	if err := http.ListenAndServe(addr, r); err != nil {
		tracer().Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

// counterDocument builds the tag tree of a counter page.
func counterDocument() *tag.Tag {
	html := tag.New("html", nil)
	head := tag.New("head", html)
	tag.NewText("wff counter", tag.New("title", head))
	body := tag.New("body", html)

	box, _ := style.New("font-family: sans-serif; padding: 12pt")
	classes := style.NewClassList("counter", "even")
	div := tag.New("div", body, box.Attribute(), classes.Attribute())
	count := tag.New("span", div)
	tag.NewText("0", count)

	n := 0
	click := func(ev tag.ServerEvent) (*wire.Object, error) {
		n++
		if err := count.AddInnerHTML(tag.NewText(strconv.Itoa(n), nil)); err != nil {
			return nil, err
		}
		parity, other := "even", "odd"
		if n%2 != 0 {
			parity, other = other, parity
		}
		classes.Remove(other)
		if err := classes.Add(parity); err != nil {
			return nil, err
		}
		margin := css.JustDimen(dimen.DU(n) * dimen.PT)
		if err := box.SetDimen("margin-left", margin); err != nil {
			return nil, err
		}
		return wire.NewObject().Put("count", n), nil
	}
	button := tag.New("button", div, tag.NewEventAttribute("onclick", click,
		"console.log('count is now ' + jsObject.count);"))
	tag.NewText("+1", button)
	return html
}
