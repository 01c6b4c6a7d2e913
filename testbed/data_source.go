package main

import (
	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/tui/events"
)

func loadLayoutData(useReal bool) (*layout.Store, error) {
	if useReal {
		return realLayoutStore()
	}
	return sampleStore(), nil
}

func loadContactsData(useReal bool) ([]events.ContactRef, error) {
	if useReal {
		return realContacts()
	}
	return sampleContacts(), nil
}
