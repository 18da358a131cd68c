package ir

// Table is a constant lookup table produced by the front end
// (polynomial coefficients, argument-reduction tables). The core only
// needs its storage format and contents to emit a declaration; the
// values themselves are opaque strings already rendered by the
// numeric oracle.
type Table struct {
	id            ID
	storageFormat Format
	values        []string
}

// NewTable builds a table entity with pre-rendered element literals.
func (a *Arena) NewTable(storage Format, values []string) *Table {
	return &Table{
		id:            a.nextID(),
		storageFormat: storage,
		values:        values,
	}
}

func (t *Table) EntityID() ID          { return t.id }
func (t *Table) StorageFormat() Format { return t.storageFormat }
func (t *Table) Size() int             { return len(t.values) }
func (t *Table) Values() []string      { return t.values }

// Function is a callable declared in the generated source, either a
// support routine emitted earlier or an external library function.
type Function struct {
	id           ID
	name         string
	argFormats   []Format
	returnFormat Format
}

// NewFunction builds a function entity.
func (a *Arena) NewFunction(name string, ret Format, args ...Format) *Function {
	return &Function{
		id:           a.nextID(),
		name:         name,
		argFormats:   args,
		returnFormat: ret,
	}
}

func (f *Function) EntityID() ID         { return f.id }
func (f *Function) Name() string         { return f.name }
func (f *Function) Arity() int           { return len(f.argFormats) }
func (f *Function) ArgFormats() []Format { return f.argFormats }
func (f *Function) ReturnFormat() Format { return f.returnFormat }
