// Package document holds the process wide ui surface shared by every renderer: named layout
// variables, the global key and mouse listener registries, the background scroll lock and
// the currently focused element.
//
// The document is owned by the bubbletea update loop and is not safe for concurrent use.
package document

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// CellWidthPx is the nominal width of a single terminal cell. Layout values are expressed in
// pixels and converted to cells when rendered.
const CellWidthPx = 8

// Element is anything that can receive keyboard focus.
type Element interface {
	ID() string
	// AcceptsText reports whether the element consumes free text keystrokes.
	AcceptsText() bool
}

type element struct {
	id   string
	text bool
}

func (e element) ID() string        { return e.id }
func (e element) AcceptsText() bool { return e.text }

// NewElement returns a plain focusable element.
func NewElement(id string) Element {
	return element{id: id}
}

// NewTextElement returns a focusable element that accepts text entry such as a search box.
func NewTextElement(id string) Element {
	return element{id: id, text: true}
}

// ListenerID identifies an installed listener so that it can be removed again.
type ListenerID uint64

// KeyListener returns true when it consumed the key, along with any follow up command.
type KeyListener func(msg tea.KeyMsg) (bool, tea.Cmd)

// MouseListener returns true when it consumed the mouse event.
type MouseListener func(msg tea.MouseMsg) (bool, tea.Cmd)

type keyEntry struct {
	id ListenerID
	fn KeyListener
}

type mouseEntry struct {
	id ListenerID
	fn MouseListener
}

type Document struct {
	nextID         ListenerID
	keyListeners   []keyEntry
	mouseListeners []mouseEntry
	vars           map[string]string
	scrollLocks    int
	active         Element
}

func New() *Document {
	return &Document{vars: map[string]string{}}
}

// AddKeyListener installs a document level key listener. Listeners added later see keys first.
func (d *Document) AddKeyListener(fn KeyListener) ListenerID {
	d.nextID++
	d.keyListeners = append(d.keyListeners, keyEntry{id: d.nextID, fn: fn})

	return d.nextID
}

func (d *Document) RemoveKeyListener(id ListenerID) {
	d.keyListeners = slices.DeleteFunc(d.keyListeners, func(entry keyEntry) bool {
		return entry.id == id
	})
}

func (d *Document) KeyListenerCount() int {
	return len(d.keyListeners)
}

// DispatchKey offers the key to each listener, newest first, stopping at the first that consumes it.
func (d *Document) DispatchKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Listeners may remove themselves while handling.
	listeners := slices.Clone(d.keyListeners)
	for i := len(listeners) - 1; i >= 0; i-- {
		if handled, cmd := listeners[i].fn(msg); handled {
			return true, cmd
		}
	}

	return false, nil
}

func (d *Document) AddMouseListener(fn MouseListener) ListenerID {
	d.nextID++
	d.mouseListeners = append(d.mouseListeners, mouseEntry{id: d.nextID, fn: fn})

	return d.nextID
}

func (d *Document) RemoveMouseListener(id ListenerID) {
	d.mouseListeners = slices.DeleteFunc(d.mouseListeners, func(entry mouseEntry) bool {
		return entry.id == id
	})
}

func (d *Document) MouseListenerCount() int {
	return len(d.mouseListeners)
}

func (d *Document) DispatchMouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	listeners := slices.Clone(d.mouseListeners)
	for i := len(listeners) - 1; i >= 0; i-- {
		if handled, cmd := listeners[i].fn(msg); handled {
			return true, cmd
		}
	}

	return false, nil
}

// SetVar implements the layout variable sink.
func (d *Document) SetVar(name string, value string) {
	d.vars[name] = value
}

func (d *Document) Var(name string) (string, bool) {
	value, found := d.vars[name]

	return value, found
}

// VarPx parses a variable holding a pixel value such as "264px".
func (d *Document) VarPx(name string) (int, bool) {
	value, found := d.vars[name]
	if !found {
		return 0, false
	}

	pixels, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(value), "px"))
	if err != nil {
		slog.Debug("Invalid pixel variable", slog.String("name", name), slog.String("value", value))

		return 0, false
	}

	return pixels, true
}

// VarCells returns a pixel variable converted into terminal cells.
func (d *Document) VarCells(name string) (int, bool) {
	pixels, found := d.VarPx(name)
	if !found {
		return 0, false
	}

	return PxToCells(pixels), true
}

func PxToCells(pixels int) int {
	return pixels / CellWidthPx
}

func CellsToPx(cells int) int {
	return cells * CellWidthPx
}

func Px(pixels int) string {
	return fmt.Sprintf("%dpx", pixels)
}

// LockScroll prevents the background content from scrolling. Locks are counted so that
// nested overlays each release only their own lock.
func (d *Document) LockScroll() {
	d.scrollLocks++
}

func (d *Document) UnlockScroll() {
	if d.scrollLocks > 0 {
		d.scrollLocks--
	}
}

func (d *Document) ScrollLocked() bool {
	return d.scrollLocks > 0
}

func (d *Document) Focus(el Element) {
	d.active = el
}

// Blur clears focus, but only when el is still the focused element.
func (d *Document) Blur(el Element) {
	if d.active != nil && el != nil && d.active.ID() == el.ID() {
		d.active = nil
	}
}

// ActiveElement returns the currently focused element, if any.
func (d *Document) ActiveElement() (Element, bool) {
	if d.active == nil {
		return nil, false
	}

	return d.active, true
}

// IsFocused reports whether the element with the given id holds focus.
func (d *Document) IsFocused(id string) bool {
	return d.active != nil && d.active.ID() == id
}
