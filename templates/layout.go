// Package templates contains the page components. They are plain
// templ.Component values built with templ.ComponentFunc, so handlers render
// them the usual way: component.Render(ctx, w).
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const layoutCSS = `
	body { font-family: Arial, sans-serif; margin: 0; background: #f5f6f8; color: #1a1a1a; }
	main { max-width: 1200px; margin: 0 auto; padding: 24px; }
	h1 { font-size: 1.5rem; }
	h2 { font-size: 1.1rem; margin-top: 32px; }
	section { background: #ffffff; border: 1px solid #e0e0e0; border-radius: 6px; padding: 16px 20px; margin-top: 16px; }
	table.dataset { border-collapse: collapse; width: 100%; font-size: 0.85rem; }
	table.dataset th, table.dataset td { border: 1px solid #d0d0d0; padding: 2px 4px; }
	table.dataset th { background: #eef3fa; text-align: left; }
	table.dataset input { width: 100%; border: none; font: inherit; background: transparent; }
	table.dataset input:focus { outline: 2px solid #4a90d9; background: #fffdf0; }
	.btn { display: inline-block; padding: 6px 14px; border: 1px solid #4a6fa5; border-radius: 4px; background: #4a6fa5; color: #fff; cursor: pointer; font-size: 0.9rem; text-decoration: none; }
	.btn-secondary { background: #fff; color: #4a6fa5; }
	.muted { color: #777; }
	.htmx-indicator { display: none; color: #777; }
	.htmx-request .htmx-indicator, .htmx-request.htmx-indicator { display: inline; }
	#toast { position: fixed; top: 16px; right: 16px; z-index: 100; }
	.toast { padding: 10px 16px; margin-bottom: 8px; border-radius: 4px; color: #fff; font-size: 0.9rem; }
	.toast.success { background: #2f8f4e; }
	.toast.error { background: #c0392b; }
	.toast.warning { background: #c77f1a; }
`

// toastJS shows toast notifications fired via the HX-Trigger header and
// replays flash-cookie toasts after full-page redirects.
const toastJS = `
	function showToast(detail) {
		var box = document.createElement('div');
		box.className = 'toast ' + (detail.type || 'success');
		box.textContent = detail.message;
		document.getElementById('toast').appendChild(box);
		setTimeout(function() { box.remove(); }, 5000);
	}
	document.body.addEventListener('showToast', function(evt) { showToast(evt.detail); });
	document.addEventListener('DOMContentLoaded', function() {
		var match = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
		if (match) {
			try { showToast(JSON.parse(decodeURIComponent(match[1]))); } catch (e) {}
			document.cookie = 'flash_toast=; Max-Age=0; path=/';
		}
	});
`

// Layout wraps a body component in the page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><script src="https://unpkg.com/htmx.org@1.9.12"></script><style>%s</style></head><body><div id="toast"></div><main>`,
			templ.EscapeString(title), layoutCSS,
		); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `</main><script>%s</script></body></html>`, toastJS)
		return err
	})
}
