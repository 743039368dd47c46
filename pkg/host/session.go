package host

import (
	"fmt"
	"strings"
)

// CategoryAudioEffect marks factory entries that are instantiable effect
// components.
const CategoryAudioEffect = "Audio Module Class"

// Session owns one component/controller pair created from a factory. The
// pair is initialized (component first) and stays valid until Close, which
// terminates in reverse order and releases both.
type Session struct {
	class      ClassInfo
	component  Component
	controller Controller
	closed     bool
}

// OpenSession selects an effect class, instantiates the pair and runs the
// initialize handshake.
//
// Selection policy: candidates are the factory entries whose category is
// CategoryAudioEffect, in enumeration order. opts.ClassID picks by exact
// identifier; otherwise opts.ClassNameFilter keeps entries whose name
// contains the filter (case-sensitive substring); otherwise the first
// candidate wins.
func OpenSession(factory Factory, opts Options) (*Session, error) {
	classes := make([]ClassInfo, 0, factory.CountClasses())
	for i := 0; i < factory.CountClasses(); i++ {
		info, err := factory.ClassInfo(i)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", i, err)
		}
		classes = append(classes, info)
	}

	class, ok := selectEffectClass(classes, opts)
	if !ok {
		return nil, fmt.Errorf("%w (filter %q)", ErrNoMatchingClass, opts.ClassNameFilter)
	}

	component, err := factory.CreateComponent(class.ID)
	if err != nil {
		return nil, fmt.Errorf("create component %q: %w", class.Name, err)
	}

	controllerID, err := component.ControllerClassID()
	if err != nil {
		component.Release()
		return nil, fmt.Errorf("component %q: %w", class.Name, err)
	}
	if !containsClass(classes, controllerID) {
		component.Release()
		return nil, fmt.Errorf("%w: component %q declares %x", ErrControllerMismatch, class.Name, controllerID)
	}

	controller, err := factory.CreateController(controllerID)
	if err != nil {
		component.Release()
		return nil, fmt.Errorf("create controller for %q: %w", class.Name, err)
	}

	if err := component.Initialize(); err != nil {
		controller.Release()
		component.Release()
		return nil, fmt.Errorf("%w: component: %v", ErrInitializeFailed, err)
	}
	if err := controller.Initialize(); err != nil {
		_ = component.Terminate()
		controller.Release()
		component.Release()
		return nil, fmt.Errorf("%w: controller: %v", ErrInitializeFailed, err)
	}

	return &Session{class: class, component: component, controller: controller}, nil
}

// Class reports the selected effect class.
func (s *Session) Class() ClassInfo { return s.class }

// Controller exposes the UI half for the editor host runner.
func (s *Session) Controller() Controller { return s.controller }

// Close terminates controller then component and releases both. Safe to call
// more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	_ = s.controller.Terminate()
	_ = s.component.Terminate()
	s.controller.Release()
	s.component.Release()
}

func selectEffectClass(classes []ClassInfo, opts Options) (ClassInfo, bool) {
	for _, c := range classes {
		if c.Category != CategoryAudioEffect {
			continue
		}
		if opts.ClassID != nil {
			if c.ID == *opts.ClassID {
				return c, true
			}
			continue
		}
		if opts.ClassNameFilter != "" && !strings.Contains(c.Name, opts.ClassNameFilter) {
			continue
		}
		return c, true
	}
	return ClassInfo{}, false
}

func containsClass(classes []ClassInfo, id [16]byte) bool {
	for _, c := range classes {
		if c.ID == id {
			return true
		}
	}
	return false
}
