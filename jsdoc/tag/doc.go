// Package tag parses single documentation tag lines such as
//
//	@param info {Object} The person to greet.
//
// into a typed [Tag].
//
// # Grammar
//
// The tag kind is the word immediately after the @ up to the first
// whitespace. Everything after it is the tag body, trimmed. Most kinds share
// a default body grammar:
//
//	name {Type} free text description
//
// The {Type} segment is optional. A name wrapped in square brackets, such as
// [callback], marks the field optional and the brackets are dropped.
//
// # Kinds
//
//   - @access public|private, @public, @private: visibility.
//   - @callback name [desc]: declares a callback. Braces in the body are not
//     treated as a type.
//   - @constant [name] [{Type}] [desc]: marks a constant.
//   - @constructor: marks a constructor. The body is ignored.
//   - @deprecated [message]: marks the entity deprecated.
//   - @example text: kept verbatim.
//   - @param name [{Type}] [desc]: a parameter. A dotted name such as
//     info.age produces a [KindSubParam] owned by the param named before
//     the first dot.
//   - @return, @returns: the return value. A leading dot on the name
//     produces a [KindSubReturn]. A capitalised first word is treated as
//     the start of the description rather than a name.
//   - @this: the receiver. A leading dot produces a [KindSubThis]; any other
//     first word is folded into the description.
//   - @throw, @throws: an error condition, optionally with a quoted
//     message followed by its cause.
//   - @todo: one item, or several separated by dashes.
//
// Any other kind fails with [ErrUnknownTag].
package tag
