// Package loader reads template descriptions and render data from YAML.
//
// A template description is a YAML list of node entries:
//
//	- element: ul
//	  attrs:
//	    class: list
//	    data-count: {bind: count}
//	  children:
//	    - each: items
//	      as: item
//	      children:
//	        - element: li
//	          children:
//	            - bind: "#item.name"
//	      else:
//	        - text: Nothing here
//	- if:
//	    - when: user
//	      children: [{bind: name}]
//	    - else: true
//	      children: [{text: Anonymous}]
//	- comment: {bind: note}
//
// Entry kinds are text, bind, comment, element, block, if and each. Attribute
// order follows the mapping order in the file. A bind path of "." refers to
// the current data.
package loader
