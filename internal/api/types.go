package api

// actionGetResponse is the Solana Action metadata returned by GET and OPTIONS.
type actionGetResponse struct {
	Type        string       `json:"type"`
	Icon        string       `json:"icon"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Label       string       `json:"label"`
	Disabled    bool         `json:"disabled,omitempty"`
	Links       *actionLinks `json:"links,omitempty"`
}

type actionLinks struct {
	Actions []linkedAction `json:"actions"`
}

type linkedAction struct {
	Type       string            `json:"type,omitempty"`
	Label      string            `json:"label"`
	Href       string            `json:"href"`
	Parameters []actionParameter `json:"parameters,omitempty"`
}

type actionParameter struct {
	Name     string         `json:"name"`
	Label    string         `json:"label,omitempty"`
	Type     string         `json:"type,omitempty"`
	Required bool           `json:"required,omitempty"`
	Options  []actionOption `json:"options,omitempty"`
}

type actionOption struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected,omitempty"`
}

// actionPostRequest is the body wallets send to POST.
type actionPostRequest struct {
	Account  string `json:"account"`
	Amount   string `json:"amount,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// actionPostResponse carries the bundle. Transaction is the first payload;
// Transactions holds all of them in signing order.
type actionPostResponse struct {
	Type              string           `json:"type"`
	Transaction       string           `json:"transaction"`
	Transactions      []string         `json:"transactions"`
	Message           string           `json:"message"`
	UnsupportedAssets []string         `json:"unsupportedAssets,omitempty"`
	Links             *actionPostLinks `json:"links,omitempty"`
}

type actionPostLinks struct {
	Next nextAction `json:"next"`
}

type nextAction struct {
	Type string `json:"type"`
	Href string `json:"href"`
}

// completedAction is returned after the wallet confirms the bundle.
type completedAction struct {
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Label       string `json:"label"`
}

type actionsJSON struct {
	Rules []actionRule `json:"rules"`
}

type actionRule struct {
	PathPattern string `json:"pathPattern"`
	APIPath     string `json:"apiPath"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
