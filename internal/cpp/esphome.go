package cpp

// Types and objects every generated program can use.
var (
	Void         = Primitive("void")
	Bool         = Primitive("bool")
	Int          = Primitive("int")
	Float        = Primitive("float")
	Double       = Primitive("double")
	Uint8        = Primitive("uint8_t")
	Uint16       = Primitive("uint16_t")
	Uint32       = Primitive("uint32_t")
	Uint64       = Primitive("uint64_t")
	Int16        = Primitive("int16_t")
	Int32        = Primitive("int32_t")
	Int64        = Primitive("int64_t")
	SizeT        = Primitive("size_t")
	ConstCharPtr = Primitive("const char *")

	Std          = Global.Namespace("std")
	StdString    = Std.Class("string")
	StdStringRef = Reference(Const(StdString))
	StdVector    = Std.Class("vector")

	NAN = Raw("NAN")

	// EsphomeNS is the runtime namespace. Generated sources open it with
	// a using-directive, so it shares the global scope.
	EsphomeNS = Global

	EntityBase       = EsphomeNS.Class("EntityBase")
	Component        = EsphomeNS.Class("Component")
	PollingComponent = EsphomeNS.Class("PollingComponent", Component)
	Application      = EsphomeNS.Class("Application")
	Parented         = EsphomeNS.Class("Parented")
	GPIOPin          = EsphomeNS.Class("GPIOPin")
	InternalGPIOPin  = EsphomeNS.Class("InternalGPIOPin", GPIOPin)
	ComponentPtr     = Pointer(Component)
	EntityCategory   = EsphomeNS.Enum("EntityCategory", false)

	// App is the global Application instance.
	App = EsphomeNS.Ident("App")

	ArduinoJSON     = Global.Namespace("ArduinoJson")
	JsonObject      = ArduinoJSON.Class("JsonObject")
	JsonObjectConst = ArduinoJSON.Class("JsonObjectConst")
)
