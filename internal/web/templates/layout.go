// Package templates renders the server-side HTML pages as templ components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const styles = `
body{font-family:system-ui,sans-serif;background:#f6f6fb;margin:0;color:#1f2937}
header{background:#fff;border-bottom:1px solid #e5e7eb;padding:1rem 2rem;font-weight:700}
main{max-width:48rem;margin:2rem auto;padding:0 1rem}
h1{margin:.2rem 0}.muted{color:#6b7280;font-size:.9rem}
.card{background:#fff;border:1px solid #e5e7eb;border-radius:.75rem;padding:1.5rem;box-shadow:0 1px 3px rgba(0,0,0,.06)}
.progress{background:#e5e7eb;height:.5rem;border-radius:1rem;overflow:hidden}
.progress>div{background:#6d28d9;height:100%}
.steps{display:flex;justify-content:space-between;margin:.4rem 0 1.5rem}
.tabs{display:grid;grid-template-columns:repeat(3,1fr);gap:.25rem;margin-bottom:1.5rem}
.tabs button{padding:.5rem;border:0;border-radius:.4rem;background:#f3f4f6;cursor:pointer}
.tabs button.active{background:#6d28d9;color:#fff}
.field{margin-bottom:1.2rem}label{display:block;font-weight:600;margin-bottom:.3rem}
input[type=text],select,textarea{width:100%;padding:.5rem;border:1px solid #d1d5db;border-radius:.4rem;box-sizing:border-box}
.error{color:#b91c1c;font-size:.85rem;margin-top:.25rem}
.alert{border:1px solid #fca5a5;background:#fef2f2;color:#991b1b;padding:.75rem 1rem;border-radius:.5rem;margin-bottom:1rem}
.actions{display:flex;justify-content:space-between;margin-top:1.5rem}
.btn{padding:.55rem 1.1rem;border-radius:.4rem;border:1px solid #d1d5db;background:#fff;cursor:pointer;text-decoration:none;color:inherit}
.btn.primary{background:#6d28d9;border-color:#6d28d9;color:#fff}
.summary div{display:flex;justify-content:space-between;padding:.2rem 0}
`

// Page wraps body in the document shell.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>%s</title><style>%s</style></head><body>`+
			`<header>Mess Menu System</header><main>`,
			templ.EscapeString(title), styles)
		if err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="alert" role="alert"><strong>%s</strong>`,
			templ.EscapeString(message))
		if err != nil {
			return err
		}
		if action != "" {
			if _, err := fmt.Fprintf(w, ` %s`, templ.EscapeString(action)); err != nil {
				return err
			}
		}
		if code != "" {
			if _, err := fmt.Fprintf(w, ` <span class="muted">(Code: %s)</span>`, templ.EscapeString(code)); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `</div>`)
		return err
	})
}

// ErrorPage is a full page around ErrorAlert.
func ErrorPage(message, action, code string) templ.Component {
	return Page("Error", ErrorAlert(message, action, code))
}
