// Package canonical provides the Codec for the canonical JSON tree form of
// a composer value. The layout matches the element tree stored by earlier
// clients: elements carry "type" and "children", text leaves carry "text"
// and one boolean per mark, links and mentions are inline elements.
package canonical
