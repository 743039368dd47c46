package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const categoryController = "Component Controller Class"

// newTestFactory builds a factory exposing one controller class plus the
// given effect classes, each paired with that controller.
func newTestFactory(log *callLog, effectNames ...string) *fakeFactory {
	ctrlID := classID(0xC0)
	f := &fakeFactory{
		classes: []ClassInfo{
			{ID: ctrlID, Category: categoryController, Name: "Shared Controller"},
		},
		components:  map[[16]byte]Component{},
		controllers: map[[16]byte]Controller{ctrlID: &fakeController{log: log}},
	}
	for i, name := range effectNames {
		id := classID(byte(i + 1))
		f.classes = append(f.classes, ClassInfo{ID: id, Category: CategoryAudioEffect, Name: name})
		f.components[id] = &fakeComponent{log: log, controllerID: ctrlID}
	}
	return f
}

func TestOpenSessionSelectsFirstEffectClass(t *testing.T) {
	log := &callLog{}
	f := newTestFactory(log, "Alpha Reverb", "Beta Delay")

	s, err := OpenSession(f, Options{})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "Alpha Reverb", s.Class().Name)
	assert.Equal(t, []string{"component.initialize", "controller.initialize"}, log.calls)
}

func TestOpenSessionFilterIsSubstringMatch(t *testing.T) {
	log := &callLog{}
	f := newTestFactory(log, "Alpha Reverb", "Beta Delay")

	s, err := OpenSession(f, Options{ClassNameFilter: "Delay"})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "Beta Delay", s.Class().Name)
}

func TestOpenSessionFilterIsCaseSensitive(t *testing.T) {
	log := &callLog{}
	f := newTestFactory(log, "Alpha Reverb")

	_, err := OpenSession(f, Options{ClassNameFilter: "reverb"})
	assert.ErrorIs(t, err, ErrNoMatchingClass)
}

func TestOpenSessionByClassID(t *testing.T) {
	log := &callLog{}
	f := newTestFactory(log, "Alpha Reverb", "Beta Delay")
	id := classID(2)

	s, err := OpenSession(f, Options{ClassID: &id})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "Beta Delay", s.Class().Name)
}

func TestOpenSessionNoEffectClasses(t *testing.T) {
	f := &fakeFactory{classes: []ClassInfo{
		{ID: classID(0xC0), Category: categoryController, Name: "Controller Only"},
	}}

	_, err := OpenSession(f, Options{})
	assert.ErrorIs(t, err, ErrNoMatchingClass)
}

func TestOpenSessionControllerMismatch(t *testing.T) {
	log := &callLog{}
	f := newTestFactory(log, "Alpha Reverb")
	// Point the component at a controller the factory never enumerates.
	f.components[classID(1)] = &fakeComponent{log: log, controllerID: classID(0xEE)}

	_, err := OpenSession(f, Options{})
	assert.ErrorIs(t, err, ErrControllerMismatch)
	assert.Equal(t, []string{"component.release"}, log.calls)
}

func TestOpenSessionComponentInitializeFailed(t *testing.T) {
	log := &callLog{}
	f := newTestFactory(log, "Alpha Reverb")
	f.components[classID(1)] = &fakeComponent{log: log, controllerID: classID(0xC0), failInit: true}

	_, err := OpenSession(f, Options{})
	require.ErrorIs(t, err, ErrInitializeFailed)

	// Nothing was initialized successfully, so nothing is terminated.
	assert.NotContains(t, log.calls, "component.terminate")
	assert.Contains(t, log.calls, "component.release")
	assert.Contains(t, log.calls, "controller.release")
}

func TestOpenSessionControllerInitializeFailed(t *testing.T) {
	log := &callLog{}
	f := newTestFactory(log, "Alpha Reverb")
	f.controllers[classID(0xC0)] = &fakeController{log: log, failInit: true}

	_, err := OpenSession(f, Options{})
	require.ErrorIs(t, err, ErrInitializeFailed)

	// The component was initialized and must be wound back.
	assert.Contains(t, log.calls, "component.terminate")
}

func TestSessionCloseOrderAndIdempotence(t *testing.T) {
	log := &callLog{}
	f := newTestFactory(log, "Alpha Reverb")

	s, err := OpenSession(f, Options{})
	require.NoError(t, err)

	s.Close()
	s.Close() // no-op

	require.Equal(t, []string{
		"component.initialize",
		"controller.initialize",
		"controller.terminate",
		"component.terminate",
		"controller.release",
		"component.release",
	}, log.calls)
}
