package api

import (
	"net/http"

	"github.com/ignite/email-domain-filter/internal/pkg/logger"
	"github.com/ignite/email-domain-filter/internal/service/settings"
	"github.com/osteele/liquid"
)

const (
	settingsPageTitle       = "Email Domain Filter"
	settingsFieldLabel      = "Excluded Domains"
	settingsFieldHelp       = "Enter the email domains to exclude, one per line. For example: example.com"
	settingsSavedQueryParam = "saved"
)

const settingsPageSource = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{ title }}</title></head>
<body>
<div class="wrap">
<h1>{{ title }}</h1>
{% for notice in notices %}<div class="notice notice-{{ notice.level }}"><p>{{ notice.message | escape }}</p></div>
{% endfor %}{% if saved %}<div class="notice notice-success"><p>Settings saved.</p></div>
{% endif %}<form method="post" action="/settings">
<table class="form-table">
<tr>
<th scope="row"><label for="{{ field }}">{{ label }}</label></th>
<td>
<textarea id="{{ field }}" name="{{ field }}" rows="10" cols="50">{{ excluded | escape }}</textarea>
<p class="description">{{ help }}</p>
</td>
</tr>
</table>
<p class="submit"><input type="submit" value="Save Changes"></p>
</form>
</div>
</body>
</html>
`

type settingsPage struct {
	tpl *liquid.Template
}

func newSettingsPage() (*settingsPage, error) {
	tpl, err := liquid.NewEngine().ParseString(settingsPageSource)
	if err != nil {
		return nil, err
	}
	return &settingsPage{tpl: tpl}, nil
}

// SettingsPage handles GET /settings
func (h *Handlers) SettingsPage(w http.ResponseWriter, r *http.Request) {
	raw, err := h.settings.GetExcludedDomains(r.Context())
	if err != nil {
		logger.Warn("api: reading excluded domains for settings page failed", "error", err)
		raw = ""
	}

	notices := h.plugin.Notices().List()
	bound := make([]map[string]any, 0, len(notices))
	for _, n := range notices {
		bound = append(bound, map[string]any{"level": string(n.Level), "message": n.Message})
	}

	out, rerr := h.page.tpl.RenderString(map[string]any{
		"title":    settingsPageTitle,
		"label":    settingsFieldLabel,
		"help":     settingsFieldHelp,
		"field":    settings.KeyExcludedDomains,
		"excluded": raw,
		"notices":  bound,
		"saved":    r.URL.Query().Get(settingsSavedQueryParam) != "",
	})
	if rerr != nil {
		logger.Error("api: rendering settings page failed", "error", rerr)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// SaveSettingsForm handles POST /settings. The textarea is stored exactly
// as submitted.
func (h *Handlers) SaveSettingsForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if err := h.settings.SetExcludedDomains(r.Context(), r.PostForm.Get(settings.KeyExcludedDomains)); err != nil {
		logger.Error("api: saving excluded domains failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/settings?"+settingsSavedQueryParam+"=1", http.StatusSeeOther)
}
