package fastview

import (
	"context"
	"errors"

	channerics "github.com/niceyeti/channerics/channels"
)

var (
	// ErrNoViews is returned by Build when WithView was never called.
	ErrNoViews = errors.New("build requires at least one WithView registration")
	// ErrNoModel is returned by Build when WithModel was never called.
	ErrNoModel = errors.New("build requires a WithModel source and converter")
)

// ViewBuilderFunc builds one view from its view-model channel; the done
// channel signals teardown.
type ViewBuilderFunc[ViewModel any] func(<-chan struct{}, <-chan ViewModel) ViewComponent

// ViewBuilder wires a data-model channel through a converter and fans the
// converted stream out to any number of view components, so every view sees
// every item. Views are returned by Build in registration order.
type ViewBuilder[DataModel any, ViewModel any] struct {
	source   <-chan DataModel
	convert  func(DataModel) ViewModel
	builders []ViewBuilderFunc[ViewModel]
	done     <-chan struct{}
}

// NewViewBuilder starts a builder for the given data-model and view-model
// pair.
func NewViewBuilder[DataModel any, ViewModel any]() *ViewBuilder[DataModel, ViewModel] {
	return &ViewBuilder[DataModel, ViewModel]{}
}

// WithModel sets the input stream and the function converting its items to
// the view-model type.
func (vb *ViewBuilder[DataModel, ViewModel]) WithModel(
	input <-chan DataModel,
	convert func(DataModel) ViewModel,
) *ViewBuilder[DataModel, ViewModel] {
	vb.source = input
	vb.convert = convert
	return vb
}

// WithView registers one view to build.
func (vb *ViewBuilder[DataModel, ViewModel]) WithView(
	builder ViewBuilderFunc[ViewModel],
) *ViewBuilder[DataModel, ViewModel] {
	vb.builders = append(vb.builders, builder)
	return vb
}

// WithContext ties the lifetime of every derived channel to ctx.
func (vb *ViewBuilder[DataModel, ViewModel]) WithContext(
	ctx context.Context,
) *ViewBuilder[DataModel, ViewModel] {
	vb.done = ctx.Done()
	return vb
}

// Build converts and broadcasts the source stream, constructs the registered
// views on their own branch of it, and returns them.
func (vb *ViewBuilder[DataModel, ViewModel]) Build() ([]ViewComponent, error) {
	if len(vb.builders) == 0 {
		return nil, ErrNoViews
	}
	if vb.source == nil || vb.convert == nil {
		return nil, ErrNoModel
	}

	converted := channerics.Convert(vb.done, vb.source, vb.convert)
	branches := channerics.Broadcast(vb.done, converted, len(vb.builders))

	views := make([]ViewComponent, 0, len(vb.builders))
	for i, build := range vb.builders {
		views = append(views, build(vb.done, branches[i]))
	}
	return views, nil
}
