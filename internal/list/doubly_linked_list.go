// Package list provides the generic doubly linked list shared by the linked list encoding
// and the compiled pattern MRU.
package list

import "iter"

// Node represents a node in the doubly linked list.
type Node[T any] struct {
	Data T
	prev *Node[T]
	next *Node[T]
}

// Next returns the node after n, nil at the tail.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the node before n, nil at the head.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// DoublyLinkedList represents the doubly linked list.
type DoublyLinkedList[T any] struct {
	head *Node[T]
	tail *Node[T]
	size int
}

// New creates a new empty doubly linked list.
func New[T any]() *DoublyLinkedList[T] {
	return &DoublyLinkedList[T]{}
}

// Count returns the number of elements in the list.
func (dll *DoublyLinkedList[T]) Count() int {
	return dll.size
}

// IsEmpty checks if the list is empty.
func (dll *DoublyLinkedList[T]) IsEmpty() bool {
	return dll.head == nil
}

// Head returns the first node or nil.
func (dll *DoublyLinkedList[T]) Head() *Node[T] { return dll.head }

// Tail returns the last node or nil.
func (dll *DoublyLinkedList[T]) Tail() *Node[T] { return dll.tail }

// AddToHead adds a new node with the given data to the head of the list.
func (dll *DoublyLinkedList[T]) AddToHead(data T) *Node[T] {
	newNode := &Node[T]{Data: data, next: dll.head}
	dll.linkHead(newNode)
	return newNode
}

func (dll *DoublyLinkedList[T]) linkHead(n *Node[T]) {
	n.prev = nil
	n.next = dll.head
	if dll.head != nil {
		dll.head.prev = n
	} else {
		dll.tail = n
	}
	dll.head = n
	dll.size++
}

// AddToTail adds a new node with the given data to the tail of the list.
func (dll *DoublyLinkedList[T]) AddToTail(data T) *Node[T] {
	newNode := &Node[T]{Data: data, prev: dll.tail}
	if dll.tail != nil {
		dll.tail.next = newNode
	} else {
		dll.head = newNode
	}
	dll.tail = newNode
	dll.size++
	return newNode
}

// DeleteFromHead removes the node from the head of the list.
func (dll *DoublyLinkedList[T]) DeleteFromHead() (T, bool) {
	var d T
	if dll.IsEmpty() {
		return d, false
	}
	d = dll.head.Data
	dll.Delete(dll.head)
	return d, true
}

// DeleteFromTail removes the node from the tail of the list.
func (dll *DoublyLinkedList[T]) DeleteFromTail() (T, bool) {
	var d T
	if dll.IsEmpty() {
		return d, false
	}
	d = dll.tail.Data
	dll.Delete(dll.tail)
	return d, true
}

// Delete unchains node n from the list. n must belong to dll.
func (dll *DoublyLinkedList[T]) Delete(n *Node[T]) bool {
	if n == nil {
		return false
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		dll.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		dll.tail = n.prev
	}
	n.next = nil
	n.prev = nil
	dll.size--
	return true
}

// MoveToHead relinks n as the head of the list.
func (dll *DoublyLinkedList[T]) MoveToHead(n *Node[T]) {
	if n == nil || dll.head == n {
		return
	}
	dll.Delete(n)
	dll.linkHead(n)
}

// PeekHead returns the data of the head node without removing it.
func (dll *DoublyLinkedList[T]) PeekHead() (T, bool) {
	var d T
	if dll.IsEmpty() {
		return d, false
	}
	return dll.head.Data, true
}

// PeekTail returns the data of the tail node without removing it.
func (dll *DoublyLinkedList[T]) PeekTail() (T, bool) {
	var d T
	if dll.IsEmpty() {
		return d, false
	}
	return dll.tail.Data, true
}

// All iterates head to tail.
func (dll *DoublyLinkedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := dll.head; n != nil; n = n.next {
			if !yield(n.Data) {
				return
			}
		}
	}
}

// Backward iterates tail to head.
func (dll *DoublyLinkedList[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := dll.tail; n != nil; n = n.prev {
			if !yield(n.Data) {
				return
			}
		}
	}
}
