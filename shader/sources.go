package shader

// ─────────────────────────────── Built-in programs ───────────────────────────────

// HelloTriangleVertex passes positions straight through.
const HelloTriangleVertex = `#version 330 core
layout (location = 0) in vec3 aPos;

void main()
{
    gl_Position = vec4(aPos.x, aPos.y, aPos.z, 1.0);
}
`

// HelloTriangleFragment paints every fragment with a single colour.
const HelloTriangleFragment = `#version 330 core
out vec4 FragColor;

uniform vec3 triangleColor;

void main()
{
    FragColor = vec4(triangleColor, 1.0);
}
`
