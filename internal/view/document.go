package view

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element ids and names of the server-rendered page.
const (
	taskRowPrefix    = "task-"
	publishPrefix    = "publish-"
	editFormID       = "updateTask"
	modalID          = "myModal"
	classComplete    = "complete"
	classIncomplete  = "incomplete"
	classTaskData    = "taskData"
	classTaskTitle   = "taskTitle"
	classTaskDesc    = "taskDescription"
	fieldFormID      = "formId"
	fieldFormTitle   = "formTitle"
	fieldFormDesc    = "formDescription"
	inputTaskID      = "task-id"
	inputTaskTitle   = "task-title"
	inputTaskDesc    = "task-description"
	inputEventID     = "event-id"
	dataNameTitle    = "title"
	dataNameDesc     = "description"
	displayNoneStyle = "display: none;"
)

// Document is a View backed by a parsed HTML page.
type Document struct {
	mu      sync.Mutex
	root    *html.Node
	notices []string
}

var _ View = (*Document)(nil)

// ParseDocument parses an HTML page.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Document{root: root}, nil
}

// Render writes the page back as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// Notices returns the notices shown so far, oldest first.
func (d *Document) Notices() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.notices))
	copy(out, d.notices)
	return out
}

// HasClass reports whether the element with the given id carries class.
func (d *Document) HasClass(id, class string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := findByID(d.root, id)
	return n != nil && hasClass(n, class)
}

// IsHidden reports whether the element with the given id is hidden.
func (d *Document) IsHidden(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := findByID(d.root, id)
	return n != nil && isHidden(n)
}

// Text returns the text content of the element with the given id.
func (d *Document) Text(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := findByID(d.root, id)
	if n == nil {
		return "", false
	}
	return textContent(n), true
}

func (d *Document) SetTaskComplete(taskID string, complete bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	row := findByID(d.root, taskRowPrefix+taskID)
	if row == nil {
		return
	}
	if complete {
		removeClass(row, classIncomplete)
		addClass(row, classComplete)
	} else {
		removeClass(row, classComplete)
		addClass(row, classIncomplete)
	}
}

func (d *Document) HideTask(taskID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if row := findByID(d.root, taskRowPrefix+taskID); row != nil {
		hide(row)
	}
}

// SetTaskText replaces the text of the row's direct .taskData children
// named "title" and "description".
func (d *Document) SetTaskText(taskID, title, description string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	row := findByID(d.root, taskRowPrefix+taskID)
	if row == nil {
		return
	}
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || !hasClass(c, classTaskData) {
			continue
		}
		switch getAttr(c, "name") {
		case dataNameTitle:
			setText(c, title)
		case dataNameDesc:
			setText(c, description)
		}
	}
}

// TaskText reads the .taskTitle and .taskDescription text inside the row.
func (d *Document) TaskText(taskID string) (string, string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	row := findByID(d.root, taskRowPrefix+taskID)
	if row == nil {
		return "", "", false
	}
	var title, description strings.Builder
	for _, n := range findAll(row, func(n *html.Node) bool { return hasClass(n, classTaskTitle) }) {
		title.WriteString(textContent(n))
	}
	for _, n := range findAll(row, func(n *html.Node) bool { return hasClass(n, classTaskDesc) }) {
		description.WriteString(textContent(n))
	}
	return title.String(), description.String(), true
}

// EditForm reads the named inputs of the edit form and the event id input.
func (d *Document) EditForm() (EditForm, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	form := findByID(d.root, editFormID)
	if form == nil {
		return EditForm{}, false
	}
	ef := EditForm{
		TaskID:      inputValue(findInputByName(form, fieldFormID)),
		Title:       inputValue(findInputByName(form, fieldFormTitle)),
		Description: inputValue(findInputByName(form, fieldFormDesc)),
		EventID:     inputValue(findByID(d.root, inputEventID)),
	}
	return ef, true
}

// FillEditForm writes the edit inputs addressed by id. The event id input
// is only written when form.EventID is set.
func (d *Document) FillEditForm(form EditForm) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if form.EventID != "" {
		setValue(findByID(d.root, inputEventID), form.EventID)
	}
	setValue(findByID(d.root, inputTaskID), form.TaskID)
	setValue(findByID(d.root, inputTaskTitle), form.Title)
	setValue(findByID(d.root, inputTaskDesc), form.Description)
}

// ResetEditForm clears the value fields of the edit form. Buttons and the
// CSRF token keep their values.
func (d *Document) ResetEditForm() {
	d.mu.Lock()
	defer d.mu.Unlock()
	form := findByID(d.root, editFormID)
	if form == nil {
		return
	}
	for _, n := range findAll(form, isFormField) {
		switch getAttr(n, "type") {
		case "submit", "button", "reset":
			continue
		}
		if getAttr(n, "name") == "csrfmiddlewaretoken" {
			continue
		}
		setValue(n, "")
	}
}

func (d *Document) HideModal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	modal := findByID(d.root, modalID)
	if modal == nil {
		return
	}
	removeClass(modal, "show")
	setAttr(modal, "aria-hidden", "true")
	hide(modal)
}

func (d *Document) SetPublishLabel(eventID, label string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if btn := findByID(d.root, publishPrefix+eventID); btn != nil {
		setText(btn, label)
	}
}

func (d *Document) Notify(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notices = append(d.notices, message)
}

// DOM helpers.

func findByID(root *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && getAttr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// findAll returns the element descendants of root (excluding root) matching pred, in document order.
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if n.Type == html.ElementNode && pred(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

func findInputByName(root *html.Node, name string) *html.Node {
	matches := findAll(root, func(n *html.Node) bool {
		return isFormField(n) && getAttr(n, "name") == name
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func isFormField(n *html.Node) bool {
	return n.DataAtom == atom.Input || n.DataAtom == atom.Textarea
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func classes(n *html.Node) []string {
	return strings.Fields(getAttr(n, "class"))
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}
	setAttr(n, "class", strings.Join(append(classes(n), class), " "))
}

func removeClass(n *html.Node, class string) {
	if !hasClass(n, class) {
		return
	}
	var kept []string
	for _, c := range classes(n) {
		if c != class {
			kept = append(kept, c)
		}
	}
	setAttr(n, "class", strings.Join(kept, " "))
}

// hide replaces any display declaration in the style attribute with display: none.
func hide(n *html.Node) {
	var decls []string
	for _, decl := range strings.Split(getAttr(n, "style"), ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" || strings.HasPrefix(strings.ToLower(decl), "display") {
			continue
		}
		decls = append(decls, decl+";")
	}
	decls = append(decls, displayNoneStyle)
	setAttr(n, "style", strings.Join(decls, " "))
}

func isHidden(n *html.Node) bool {
	for _, decl := range strings.Split(getAttr(n, "style"), ";") {
		key, val, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(key), "display") && strings.TrimSpace(val) == "none" {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func inputValue(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.DataAtom == atom.Textarea {
		return textContent(n)
	}
	return getAttr(n, "value")
}

func setValue(n *html.Node, val string) {
	if n == nil {
		return
	}
	if n.DataAtom == atom.Textarea {
		setText(n, val)
		return
	}
	setAttr(n, "value", val)
}
